package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeToolInput(t *testing.T) {
	cases := []struct {
		name    string
		args    string
		want    string
		wantErr bool
	}{
		{name: "input field", args: `{"input":"Eiffel Tower"}`, want: "Eiffel Tower"},
		{name: "single other field", args: `{"query":"paris"}`, want: "paris"},
		{name: "json string", args: `"plain"`, want: "plain"},
		{name: "raw text", args: "raw text", want: "raw text"},
		{name: "empty", args: "  ", want: ""},
		{name: "non string input", args: `{"input":3}`, wantErr: true},
		{name: "ambiguous", args: `{"a":"1","b":"2"}`, wantErr: true},
		{name: "broken json", args: `{"input":`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeToolInput(tc.args)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
