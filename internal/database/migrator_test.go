package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	content := `-- leading comment
CREATE TABLE a (
    id SERIAL PRIMARY KEY
);

CREATE INDEX idx_a ON a(id);
`
	statements := splitStatements(content)
	assert.Len(t, statements, 2)
	assert.Contains(t, statements[0], "CREATE TABLE a")
	assert.Contains(t, statements[1], "CREATE INDEX idx_a")
}

func TestSplitStatementsTrailingWithoutSemicolon(t *testing.T) {
	statements := splitStatements("UPDATE a SET id = 1")
	assert.Equal(t, []string{"UPDATE a SET id = 1"}, statements)
}

func TestSplitStatementsEmpty(t *testing.T) {
	assert.Empty(t, splitStatements("-- only comments\n\n"))
}
