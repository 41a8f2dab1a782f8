package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoadsEmbeddedLists(t *testing.T) {
	require.NoError(t, Init())

	l := Get()
	assert.Len(t, l.P, 17)
	assert.Len(t, l.Q, 12)
	assert.Equal(t, "pa", l.P[0])
	assert.Equal(t, "qi", l.Q[0])

	p, q := Stats()
	assert.Equal(t, 17, p)
	assert.Equal(t, 12, q)
}

func TestGroup(t *testing.T) {
	l := Lists{P: []string{"pa"}, Q: []string{"qi"}}
	assert.Equal(t, []string{"pa"}, l.Group("p"))
	assert.Equal(t, []string{"qi"}, l.Group("q"))
	assert.Nil(t, l.Group("x"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		lists   Lists
		wantErr bool
	}{
		{"ok", Lists{P: []string{"pa", "po"}, Q: []string{"qi"}}, false},
		{"empty p", Lists{Q: []string{"qi"}}, true},
		{"empty q", Lists{P: []string{"pa"}}, true},
		{"wrong initial", Lists{P: []string{"qa"}, Q: []string{"qi"}}, true},
		{"not alpha", Lists{P: []string{"pa1"}, Q: []string{"qi"}}, true},
		{"blank", Lists{P: []string{""}, Q: []string{"qi"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.lists)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n PA \n\npo\n"), 0o644))

	got, err := readWordFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pa", "po"}, got)

	_, err = readWordFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
