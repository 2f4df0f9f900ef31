package journal

// Monetary columns are TEXT: decimals go in and out as exact strings so the
// audit trail is never re-rounded through float64.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	tx_id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	kind TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price_per_share TEXT NOT NULL,
	cash_delta TEXT NOT NULL,
	balance_after TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS valuations (
	time DATETIME NOT NULL,
	account_id TEXT NOT NULL,
	cash TEXT NOT NULL,
	stock TEXT NOT NULL,
	total TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id, time);
CREATE INDEX IF NOT EXISTS idx_valuations_time ON valuations(time);
`
