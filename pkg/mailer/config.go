package mailer

import (
	"io/fs"
	"os"
)

// DefaultTemplate is the name of the embedded notification template.
const DefaultTemplate = "email_template"

// Config selects the template set and the template used for broadcasts.
type Config struct {
	// Directory with <name>.html / <name>.txt files; empty uses the embedded set.
	TemplatesDir string `yaml:"templates_dir" env:"MAILER_TEMPLATES_DIR"`
	Template     string `yaml:"template" env:"MAILER_TEMPLATE" envDefault:"email_template"`
}

// TemplatesFS returns the filesystem templates are loaded from.
func (c Config) TemplatesFS() fs.FS {
	if c.TemplatesDir == "" {
		return DefaultTemplates()
	}
	return os.DirFS(c.TemplatesDir)
}
