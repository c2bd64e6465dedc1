package store

// schema is the full relational layout. Facet tables are owned by their
// CVE record and cascade on delete; news_articles.cve_ids is a soft
// reference and deliberately carries no foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS cves (
	cve_id TEXT PRIMARY KEY,
	summary TEXT,
	state TEXT NOT NULL DEFAULT 'PUBLISHED',
	published TIMESTAMP,
	last_modified TIMESTAMP,
	cvss_score REAL,
	epss_score REAL
);

CREATE TABLE IF NOT EXISTS epss (
	cve_id TEXT PRIMARY KEY REFERENCES cves(cve_id) ON DELETE CASCADE,
	epss REAL NOT NULL,
	percentile REAL,
	as_of DATE
);

CREATE TABLE IF NOT EXISTS kve (
	cve_id TEXT PRIMARY KEY REFERENCES cves(cve_id) ON DELETE CASCADE,
	kve_score REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS kev (
	cve_id TEXT PRIMARY KEY REFERENCES cves(cve_id) ON DELETE CASCADE,
	kev_flag INTEGER NOT NULL DEFAULT 1,
	date_added DATE
);

CREATE TABLE IF NOT EXISTS activity (
	cve_id TEXT NOT NULL REFERENCES cves(cve_id) ON DELETE CASCADE,
	time_window TEXT NOT NULL,
	activity_score REAL NOT NULL,
	last_seen TIMESTAMP,
	PRIMARY KEY (cve_id, time_window)
);

CREATE TABLE IF NOT EXISTS news_articles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	url TEXT NOT NULL UNIQUE,
	cve_ids TEXT,
	score REAL NOT NULL DEFAULT 0,
	published_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS inventory (
	asset_id TEXT PRIMARY KEY,
	hostname TEXT,
	ip_address TEXT,
	cpe_string TEXT,
	asset_type TEXT,
	internet_facing INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS affected_products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cve_id TEXT NOT NULL REFERENCES cves(cve_id) ON DELETE CASCADE,
	ecosystem TEXT NOT NULL,
	product TEXT NOT NULL,
	version_start_including TEXT,
	version_end_including TEXT,
	version_start_excluding TEXT,
	version_end_excluding TEXT
);

CREATE INDEX IF NOT EXISTS idx_cves_modified ON cves(last_modified);
CREATE INDEX IF NOT EXISTS idx_news_published ON news_articles(published_at);
CREATE INDEX IF NOT EXISTS idx_products_lookup ON affected_products(ecosystem, product);
`
