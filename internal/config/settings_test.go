package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Valid(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())
}

func TestSettings_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(s *Settings)
		message string
	}{
		{name: "marker not identifier", mutate: func(s *Settings) { s.Marker = "1LIT" }, message: "marker"},
		{name: "marker keyword", mutate: func(s *Settings) { s.Marker = "map" }, message: "marker"},
		{name: "input ext without dot", mutate: func(s *Settings) { s.InputExt = "golit" }, message: "input_ext"},
		{name: "output ext only dot", mutate: func(s *Settings) { s.OutputExt = "." }, message: "output_ext"},
		{name: "same extensions", mutate: func(s *Settings) { s.OutputExt = s.InputExt }, message: "must differ"},
		{name: "empty runtime import", mutate: func(s *Settings) { s.RuntimeImport = "" }, message: "runtime_import"},
		{name: "runtime name not identifier", mutate: func(s *Settings) { s.RuntimeName = "lit-x" }, message: "runtime_name"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			s := DefaultSettings()
			tc.mutate(&s)

			// --- Act ---
			err := s.Validate()

			// --- Assert ---
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestSettings_Paths(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "pkg/vec.go", s.OutputPath("pkg/vec.golit"))
	assert.True(t, s.Excluded("vendor"))
	assert.False(t, s.Excluded("pkg"))
}
