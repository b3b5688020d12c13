package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS receipts (
    id            TEXT PRIMARY KEY,
    store_name    TEXT NOT NULL,
    purchase_date TEXT NOT NULL,
    total_amount  REAL NOT NULL,
    status        TEXT NOT NULL,
    image_url     TEXT,
    created_at    TEXT,
    updated_at    TEXT
);

CREATE TABLE IF NOT EXISTS receipt_items (
    id          TEXT PRIMARY KEY,
    receipt_id  TEXT NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
    name        TEXT NOT NULL,
    quantity    REAL NOT NULL,
    unit_price  REAL NOT NULL,
    total_price REAL NOT NULL,
    category    TEXT
);

CREATE INDEX IF NOT EXISTS idx_receipt_items_receipt
    ON receipt_items(receipt_id);

CREATE TABLE IF NOT EXISTS budgets (
    id         TEXT PRIMARY KEY,
    category   TEXT NOT NULL,
    amount     REAL NOT NULL,
    period     TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date   TEXT
);

CREATE TABLE IF NOT EXISTS fetch_meta (
    resource   TEXT PRIMARY KEY,
    fetched_at TEXT NOT NULL
);
`
