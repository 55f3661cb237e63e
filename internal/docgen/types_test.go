package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleRecordIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Button", "Button"},
		{"useToggle", "useToggle"},
		{"use-mobile", "useMobile"},
		{"use-media-query", "useMediaQuery"},
		{"theme.config", "themeConfig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModuleRecord{Name: tt.name}.Identifier())
		})
	}
}

func TestModuleRecordSubpathKey(t *testing.T) {
	assert.Equal(t, "./use-mobile", ModuleRecord{Name: "use-mobile"}.SubpathKey())
	assert.Equal(t, "./datepicker", ModuleRecord{Name: "DatePicker"}.SubpathKey())
}
