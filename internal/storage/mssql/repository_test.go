package mssql

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekantipur-scraper/internal/scraper"
)

func TestNullString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, nullString(nil))

	s := "मनोरञ्जन"
	assert.Equal(t, sql.NullString{String: s, Valid: true}, nullString(&s))
}

func TestArticleArgs(t *testing.T) {
	title := "Title"
	args := articleArgs(42, 3, scraper.ArticleRecord{Title: &title, Category: "मनोरञ्जन"})
	require.Len(t, args, 6)

	byName := map[string]any{}
	for _, a := range args {
		named := a.(sql.NamedArg)
		byName[named.Name] = named.Value
	}

	assert.Equal(t, int64(42), byName["RunUID"])
	assert.Equal(t, 3, byName["SequenceNum"])
	assert.Equal(t, sql.NullString{String: "Title", Valid: true}, byName["Title"])
	assert.Equal(t, sql.NullString{}, byName["ImageURL"])
	assert.Equal(t, "मनोरञ्जन", byName["Category"])
	assert.Equal(t, sql.NullString{}, byName["Author"])
}

func TestCartoonArgs(t *testing.T) {
	url := "https://cdn.example/full.jpg"
	args := cartoonArgs(7, &scraper.CartoonRecord{ImageURL: &url})
	require.Len(t, args, 4)

	named := args[2].(sql.NamedArg)
	assert.Equal(t, "ImageURL", named.Name)
	assert.Equal(t, sql.NullString{String: url, Valid: true}, named.Value)
}

func TestRollbackDone(t *testing.T) {
	tests := []struct {
		name string
		err  error
		done bool
	}{
		{name: "rolled back", err: nil, done: true},
		{name: "already committed", err: sql.ErrTxDone, done: true},
		{name: "wrapped tx done", err: fmt.Errorf("rollback: %w", sql.ErrTxDone), done: true},
		{name: "connection lost", err: errors.New("connection reset"), done: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.done, rollbackDone(tt.err))
		})
	}
}
