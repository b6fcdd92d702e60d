package db

// Schema is the full relational schema, applied idempotently at open.
// Deleting a deck or tag that is still referenced is rejected (RESTRICT);
// renumbering a deck cascades into its problems.
const Schema = `
CREATE TABLE IF NOT EXISTS decks(
    deck_id                  INTEGER PRIMARY KEY,
    deck_name                TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS problems(
    problem_id               INTEGER PRIMARY KEY,
    problem_topic            TEXT,
    problem_review_count     INTEGER,
    problem_last_review_date TEXT,
    problem_feedback         INTEGER,
    problem_src              TEXT,
    problem_deck             INTEGER NOT NULL,
    problem_content          TEXT UNIQUE NOT NULL,
    problem_creation_date    TEXT,
    FOREIGN KEY (problem_deck) REFERENCES decks(deck_id) ON DELETE RESTRICT ON UPDATE CASCADE
);

CREATE TABLE IF NOT EXISTS tags(
    tag_id                   INTEGER PRIMARY KEY,
    tag_name                 TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS problems_tags(
    problem_id               INTEGER NOT NULL,
    tag_id                   INTEGER NOT NULL,
    FOREIGN KEY (problem_id) REFERENCES problems(problem_id) ON DELETE RESTRICT,
    FOREIGN KEY (tag_id)     REFERENCES tags(tag_id) ON DELETE RESTRICT
);
`
