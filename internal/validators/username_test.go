package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name        string
		username    string
		wantErr     bool
		wantSymbols string
	}{
		{name: "plain", username: "vasya"},
		{name: "allowed punctuation", username: "vasya.pupkin+1@mail-ru_x"},
		{name: "unicode letters", username: "вася"},
		{name: "space and bang", username: "bad name!", wantErr: true, wantSymbols: " !"},
		{name: "repeated offenders kept in order", username: "a#b$c#", wantErr: true, wantSymbols: "#$#"},
		{name: "only bad", username: "%%", wantErr: true, wantSymbols: "%%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var symErr *InvalidSymbolsError
			assert.True(t, errors.As(err, &symErr))
			assert.Equal(t, tt.wantSymbols, symErr.Symbols)
			assert.Contains(t, err.Error(), tt.wantSymbols)
		})
	}
}

func TestValidateUsername_Empty(t *testing.T) {
	assert.ErrorIs(t, ValidateUsername(""), ErrEmptyUsername)
}
