package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const (
	TemplateApplicationAccepted = "application_accepted"
	TemplateApplicationRejected = "application_rejected"
)

var builtinTemplates = map[string]string{
	TemplateApplicationAccepted: `<p>Hello {{.RecipientName}},</p>
<p>Great news! Your application for <b>{{.JobTitle}}</b> at {{.Company}} has been accepted.</p>
{{if .Link}}<p><a href="{{.Link}}">View your application</a></p>{{end}}`,
	TemplateApplicationRejected: `<p>Hello {{.RecipientName}},</p>
<p>Your application for <b>{{.JobTitle}}</b> at {{.Company}} has been reviewed and rejected.</p>
{{if .Link}}<p><a href="{{.Link}}">View your application</a></p>{{end}}`,
}

// TemplateManager хранит разобранные шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер со встроенными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data interface{}) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет (или заменяет) шаблон
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}
