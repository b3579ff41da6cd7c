package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "валидный email",
			raw:  "a@x.com",
			want: "a@x.com",
		},
		{
			name: "пробелы обрезаются",
			raw:  "  user@example.com \n",
			want: "user@example.com",
		},
		{
			name:    "пустая строка",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "только пробелы",
			raw:     "   \t ",
			wantErr: true,
		},
		{
			name:    "без собаки",
			raw:     "bad-string",
			wantErr: true,
		},
		{
			name:    "собака в начале",
			raw:     "@x.com",
			wantErr: true,
		},
		{
			name:    "собака в конце",
			raw:     "user@",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidIdentity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
