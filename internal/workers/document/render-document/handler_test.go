package renderdocument

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canara-formfill/internal/common/docx"
	"canara-formfill/internal/common/docx/docxtest"
	apperrors "canara-formfill/internal/common/errors"
	"canara-formfill/internal/common/logger"
)

func newHandler(t *testing.T, templatePath string) (*Handler, string) {
	t.Helper()
	tempDir := t.TempDir()
	return NewHandler(&Config{TemplatePath: templatePath, TempDir: tempDir}, logger.NewTestLogger(t)), tempDir
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExecute_RendersContext(t *testing.T) {
	template := docxtest.Write(t, t.TempDir(), "template.docx",
		docxtest.Paragraph("Amount: {{amount}}"),
		docxtest.Table([]string{"Name", "{{ name }}"}),
	)
	h, tempDir := newHandler(t, template)

	out, err := h.Execute(context.Background(), &Input{
		Context: map[string]string{"amount": "100", "name": "Ravi"},
	})

	require.NoError(t, err)
	assert.Equal(t, len(out.Document), out.Size)
	text := docxtest.VisibleText(t, docxtest.ReadDocumentXML(t, out.Document))
	assert.Contains(t, text, "Amount: 100")
	assert.Contains(t, text, "NameRavi")
	assertDirEmpty(t, tempDir)
}

func TestExecute_TemplateIsNotModified(t *testing.T) {
	template := docxtest.Write(t, t.TempDir(), "template.docx", docxtest.Paragraph("{{name}}"))
	before, err := os.ReadFile(template)
	require.NoError(t, err)

	h, _ := newHandler(t, template)
	_, err = h.Execute(context.Background(), &Input{Context: map[string]string{"name": "Ravi"}})
	require.NoError(t, err)

	after, err := os.ReadFile(template)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExecute_TemplateOpenFailed(t *testing.T) {
	h, tempDir := newHandler(t, filepath.Join(t.TempDir(), "gone.docx"))

	_, err := h.Execute(context.Background(), &Input{Context: map[string]string{}})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeTemplateOpenFailed))
	assertDirEmpty(t, tempDir)
}

func TestExecute_UnsupportedSyntaxIsRenderError(t *testing.T) {
	template := docxtest.Write(t, t.TempDir(), "template.docx", docxtest.Paragraph("{% for x in items %}"))
	h, tempDir := newHandler(t, template)

	_, err := h.Execute(context.Background(), &Input{Context: map[string]string{}})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeRenderFailed))
	assert.ErrorIs(t, err, docx.ErrUnsupportedSyntax)
	assertDirEmpty(t, tempDir)
}

func TestExecute_TempFileRemovedWhenSaveFails(t *testing.T) {
	template := docxtest.Write(t, t.TempDir(), "template.docx", docxtest.Paragraph("{{name}}"))
	h, tempDir := newHandler(t, template)

	var savedTo string
	h.save = func(doc *docx.Document, path string) error {
		savedTo = path
		require.NoError(t, os.WriteFile(path, []byte("partial"), 0o600))
		return errors.New("disk full")
	}

	_, err := h.Execute(context.Background(), &Input{Context: map[string]string{"name": "x"}})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeRenderFailed))
	assert.Equal(t, tempDir, filepath.Dir(savedTo))
	assert.NoFileExists(t, savedTo)
	assertDirEmpty(t, tempDir)
}
