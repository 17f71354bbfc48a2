package db

import (
	"context"
	"fmt"
	"strings"
)

// Migrate applies the idempotent DDL for the career report service. Call it
// once on startup, after the database connection has been verified. Every
// statement is IF NOT EXISTS, so re-running on every boot is safe.
func Migrate(ctx context.Context, db DBTX) error {
	// Try to run as a single script; if the driver rejects multiple statements,
	// fall back to splitting on semicolons (sufficient for simple DDL).
	if _, err := db.ExecContext(ctx, schema); err != nil {
		for _, stmt := range splitSQL(schema) {
			if _, e := db.ExecContext(ctx, stmt); e != nil {
				return fmt.Errorf("db: migrate failed at %q: %w", firstLine(stmt), e)
			}
		}
	}
	return nil
}

// gen_random_uuid and gen_random_bytes both come from pgcrypto.
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

-- Sessions -------------------------------------------------------------------
CREATE TABLE IF NOT EXISTS sessions (
  id                     UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  anon_token             TEXT NOT NULL UNIQUE,
  student_name           TEXT,
  grade_level            TEXT,
  email                  TEXT,
  stripe_customer_id     TEXT,
  stripe_payment_intent  TEXT,
  paid                   BOOLEAN NOT NULL DEFAULT FALSE,
  created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS sessions_payment_intent_idx
  ON sessions (stripe_payment_intent);

-- Answers --------------------------------------------------------------------
CREATE TABLE IF NOT EXISTS answers (
  id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  session_id       UUID NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  assessment_type  TEXT NOT NULL,
  question_id      TEXT NOT NULL,
  value            SMALLINT NOT NULL,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (session_id, assessment_type, question_id)
);

-- Reports --------------------------------------------------------------------
CREATE TABLE IF NOT EXISTS reports (
  id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  session_id        UUID NOT NULL UNIQUE REFERENCES sessions(id) ON DELETE CASCADE,
  access_token      TEXT NOT NULL UNIQUE,
  status            TEXT NOT NULL DEFAULT 'draft'
                    CHECK (status IN ('draft','processing','ready','error')),
  holland_code      TEXT,
  overall_strength  TEXT,
  profile_json      JSONB,
  guidance_summary  TEXT,
  guidance_html     TEXT,
  error_message     TEXT,
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS reports_status_idx
  ON reports (status) WHERE status IN ('draft','processing');

-- Assessment results ---------------------------------------------------------
CREATE TABLE IF NOT EXISTS assessment_results (
  id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  report_id        UUID NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
  assessment_type  TEXT NOT NULL,
  result_json      JSONB,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (report_id, assessment_type)
);

-- Stripe webhook idempotency -------------------------------------------------
CREATE TABLE IF NOT EXISTS stripe_events (
  id             TEXT PRIMARY KEY,
  type           TEXT NOT NULL,
  status         TEXT NOT NULL DEFAULT 'pending'
                 CHECK (status IN ('pending','processed','failed')),
  error_message  TEXT,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// splitSQL naively splits on ';' boundaries so we can run one statement at a
// time. Acceptable for this DDL (no functions or procedures).
func splitSQL(s string) []string {
	raw := strings.Split(s, ";")
	out := make([]string, 0, len(raw))
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part+";")
	}
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
