package sqlstore

const propertyColumns = `title_en, title_ar, description_en, description_ar, type, category,
  location, price, area, image_url, features, is_featured, created_at`

const insertPropertySQL = `
INSERT INTO properties
  (` + propertyColumns + `)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertInquirySQL = `
INSERT INTO inquiries
  (name, email, phone, message, property_id, created_at)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const listPropertiesSQL = `
SELECT id, ` + propertyColumns + `
FROM properties
ORDER BY id
`

const getPropertySQL = `
SELECT id, ` + propertyColumns + `
FROM properties
WHERE id = ?
`

// -----------------------------------------------------------------------------
// DDL
// -----------------------------------------------------------------------------

var mysqlSchema = []string{`
CREATE TABLE IF NOT EXISTS properties (
  id             INT          NOT NULL AUTO_INCREMENT PRIMARY KEY,
  title_en       TEXT         NOT NULL,
  title_ar       TEXT         NOT NULL,
  description_en TEXT         NOT NULL,
  description_ar TEXT         NOT NULL,
  type           VARCHAR(16)  NOT NULL,
  category       VARCHAR(16)  NOT NULL,
  location       VARCHAR(255) NOT NULL,
  price          INT          NOT NULL,
  area           INT          NOT NULL,
  image_url      TEXT         NOT NULL,
  features       JSON         NULL,
  is_featured    TINYINT(1)   NOT NULL DEFAULT 0,
  created_at     DATETIME(6)  NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, `
CREATE TABLE IF NOT EXISTS inquiries (
  id          INT         NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name        TEXT        NOT NULL,
  email       TEXT        NOT NULL,
  phone       TEXT        NOT NULL,
  message     TEXT        NOT NULL,
  property_id INT         NULL,
  created_at  DATETIME(6) NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS properties (
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  title_en       TEXT    NOT NULL,
  title_ar       TEXT    NOT NULL,
  description_en TEXT    NOT NULL,
  description_ar TEXT    NOT NULL,
  type           TEXT    NOT NULL,
  category       TEXT    NOT NULL,
  location       TEXT    NOT NULL,
  price          INTEGER NOT NULL,
  area           INTEGER NOT NULL,
  image_url      TEXT    NOT NULL,
  features       TEXT,
  is_featured    INTEGER NOT NULL DEFAULT 0,
  created_at     TEXT    NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS inquiries (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  name        TEXT    NOT NULL,
  email       TEXT    NOT NULL,
  phone       TEXT    NOT NULL,
  message     TEXT    NOT NULL,
  property_id INTEGER,
  created_at  TEXT    NOT NULL
)`,
}
