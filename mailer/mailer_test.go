package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	body, err := RenderHTML([]QRCode{
		{Name: "Dr. John Doe", Token: "TOK-1", URL: "https://event.example.com/pass/TOK-1", Image: "data:image/png;base64,AAAA"},
		{Name: "Mrs. Doe (Spouse)", Token: "TOK-2", URL: "https://event.example.com/pass/TOK-2", Image: "data:image/png;base64,BBBB"},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Dr. John Doe")
	assert.Contains(t, body, "Mrs. Doe (Spouse)")
	assert.Contains(t, body, "https://event.example.com/pass/TOK-2")
	assert.Contains(t, body, `src="data:image/png;base64,AAAA"`)
}

func TestRenderHTML_EscapesNames(t *testing.T) {
	body, err := RenderHTML([]QRCode{{Name: "<script>x</script>", Image: "data:image/png;base64,AAAA"}})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>x</script>")
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer()
	assert.NoError(t, m.SendQRCodes(context.Background(), "john@example.com", nil))
}
