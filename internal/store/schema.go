package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS startups (
    row_num              INTEGER PRIMARY KEY,
    date                 TEXT,
    startup_name         TEXT,
    industry_vertical    TEXT,
    sub_vertical         TEXT,
    city_location        TEXT,
    investors_name       TEXT,
    investment_type      TEXT,
    amount_usd           REAL
);

CREATE TABLE IF NOT EXISTS export_meta (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    source_path          TEXT NOT NULL,
    criteria             TEXT NOT NULL,
    record_count         INTEGER NOT NULL,
    exported_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_startups_industry ON startups(industry_vertical);
CREATE INDEX IF NOT EXISTS idx_startups_city ON startups(city_location);
CREATE INDEX IF NOT EXISTS idx_startups_date ON startups(date);
`
