package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    budget               TEXT NOT NULL,
    spent                TEXT NOT NULL DEFAULT '0',
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bills (
    id                   TEXT PRIMARY KEY,
    title                TEXT NOT NULL,
    amount               TEXT NOT NULL,
    due_date             TEXT NOT NULL,
    is_paid              INTEGER NOT NULL DEFAULT 0,
    last_paid            TEXT,
    is_recurring         INTEGER NOT NULL DEFAULT 0,
    frequency            TEXT,
    custom_interval_days INTEGER,
    category_id          TEXT REFERENCES categories(id),
    notes                TEXT,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS incomes (
    id                   TEXT PRIMARY KEY,
    source               TEXT NOT NULL,
    amount               TEXT NOT NULL,
    receive_date         TEXT NOT NULL,
    is_recurring         INTEGER NOT NULL DEFAULT 0,
    frequency            TEXT,
    custom_interval_days INTEGER,
    notes                TEXT,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id                   TEXT PRIMARY KEY,
    category_id          TEXT NOT NULL REFERENCES categories(id),
    amount               TEXT NOT NULL,
    description          TEXT,
    date                 TEXT NOT NULL,
    bill_id              TEXT,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_due ON bills(due_date);
CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category_id);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
`
