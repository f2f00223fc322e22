package corpus

// SchemaVersion is the current corpus database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the corpus database schema.
const Schema = `
-- One row per imported corpus
CREATE TABLE IF NOT EXISTS corpora (
    name TEXT PRIMARY KEY,
    source TEXT,
    value_count INTEGER NOT NULL,
    imported_at INTEGER NOT NULL
);

-- Corpus values in corpus order
CREATE TABLE IF NOT EXISTS corpus_values (
    corpus TEXT NOT NULL,
    position INTEGER NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (corpus, position)
);

CREATE INDEX IF NOT EXISTS idx_corpus_values_corpus ON corpus_values(corpus);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`
