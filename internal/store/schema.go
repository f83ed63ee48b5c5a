package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS evaluations (
    id                   TEXT PRIMARY KEY,
    created_at_ns        INTEGER NOT NULL,
    income               REAL NOT NULL,
    expenses             REAL NOT NULL,
    savings              REAL NOT NULL,
    debt                 REAL NOT NULL,
    category             TEXT NOT NULL,
    score                REAL NOT NULL,
    tier                 TEXT NOT NULL,
    model_path           TEXT
);

CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at_ns);
CREATE INDEX IF NOT EXISTS idx_evaluations_category ON evaluations(category);
`
