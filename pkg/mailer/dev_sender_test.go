package mailer_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/notify/pkg/mailer"
)

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes html and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := mailer.NewDevSender(dir)

		err := sender.SendEmail(ctx, mailer.SendEmailParams{
			SendTo:   "parent@example.com",
			Subject:  "Invoice ready",
			BodyHTML: "<p>Your invoice is available.</p>",
			Tag:      "childcare_invoice",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		var htmlFile, jsonFile string
		for _, entry := range entries {
			switch filepath.Ext(entry.Name()) {
			case ".html":
				htmlFile = entry.Name()
			case ".json":
				jsonFile = entry.Name()
			}
		}
		require.NotEmpty(t, htmlFile)
		require.NotEmpty(t, jsonFile)
		assert.Contains(t, htmlFile, "childcare_invoice")

		body, err := os.ReadFile(filepath.Join(dir, htmlFile))
		require.NoError(t, err)
		assert.Equal(t, "<p>Your invoice is available.</p>", string(body))

		raw, err := os.ReadFile(filepath.Join(dir, jsonFile))
		require.NoError(t, err)

		var metadata struct {
			SendTo  string `json:"send_to"`
			Subject string `json:"subject"`
			Tag     string `json:"tag"`
		}
		require.NoError(t, json.Unmarshal(raw, &metadata))
		assert.Equal(t, "parent@example.com", metadata.SendTo)
		assert.Equal(t, "Invoice ready", metadata.Subject)
		assert.Equal(t, "childcare_invoice", metadata.Tag)
	})

	t.Run("falls back to subject for the filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := mailer.NewDevSender(dir)

		err := sender.SendEmail(ctx, mailer.SendEmailParams{
			SendTo:   "parent@example.com",
			Subject:  "Library Loan Overdue!",
			BodyHTML: "<p>Please return your book.</p>",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, entry := range entries {
			assert.Contains(t, entry.Name(), "library_loan_overdue")
			assert.False(t, strings.ContainsAny(entry.Name(), "! "))
		}
	})

	t.Run("rejects invalid params before writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := mailer.NewDevSender(dir)

		err := sender.SendEmail(ctx, mailer.SendEmailParams{SendTo: "parent@example.com"})
		assert.ErrorIs(t, err, mailer.ErrInvalidParams)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
