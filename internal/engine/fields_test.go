package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

func TestNewPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"ten digits", "0123456789", false},
		{"too short", "123456789", true},
		{"too long", "12345678901", true},
		{"letters", "12345abcde", true},
		{"punctuation", "123-456-78", true},
		{"spaces", "12345 6789", true},
		{"plus prefix", "+123456789", true},
		{"empty", "", true},
		{"non-ascii digits", "١٢٣٤٥٦٧٨٩٠", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := engine.NewPhone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, engine.ErrValidation))

				var vErr *engine.ValidationError
				require.True(t, errors.As(err, &vErr))
				assert.Equal(t, config.TKeyErrPhone, vErr.MessageID)
				assert.Equal(t, tt.input, vErr.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, p.String())
		})
	}
}

func TestNewBirthday_RoundTrip(t *testing.T) {
	for _, s := range []string{"12.06.1990", "01.01.2000", "29.02.2024", "31.12.1999"} {
		t.Run(s, func(t *testing.T) {
			b, err := engine.NewBirthday(s)
			require.NoError(t, err)
			assert.Equal(t, s, b.String())
		})
	}
}

func TestNewBirthday_Rejects(t *testing.T) {
	tests := []string{
		"1990-06-12",
		"12/06/1990",
		"1.6.1990",
		"31.02.2020",
		"29.02.2023",
		"00.01.2000",
		"12.13.1990",
		"",
		"tomorrow",
	}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			_, err := engine.NewBirthday(s)
			require.Error(t, err)
			assert.ErrorIs(t, err, engine.ErrValidation)

			var vErr *engine.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, config.TKeyErrBirthday, vErr.MessageID)
		})
	}
}

func TestNewName(t *testing.T) {
	n, err := engine.NewName("John")
	require.NoError(t, err)
	assert.Equal(t, "John", n.String())

	_, err = engine.NewName("   ")
	assert.ErrorIs(t, err, engine.ErrValidation)
}

func TestFields_ImplementField(t *testing.T) {
	p, _ := engine.NewPhone("1234567890")
	b, _ := engine.NewBirthday("01.02.2003")
	n, _ := engine.NewName("Ann")

	for _, f := range []engine.Field{p, b, n} {
		assert.NotEmpty(t, f.String())
	}
}

func TestNotFoundError_Is(t *testing.T) {
	err := error(&engine.NotFoundError{Name: "Ghost"})
	assert.ErrorIs(t, err, engine.ErrNotFound)
	assert.NotErrorIs(t, err, engine.ErrValidation)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestUsageError(t *testing.T) {
	err := engine.NewUsageError(config.TKeyUsageAdd)
	assert.ErrorIs(t, err, engine.ErrValidation)

	var vErr *engine.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, config.TKeyUsageAdd, vErr.MessageID)
}
