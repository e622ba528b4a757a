// Package generate turns a spec document into deployment configuration.
// Two flavors are supported: a Kong-style declarative config and a
// Kubernetes Ingress manifest.
package generate

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Lisiadito/insomnia/internal/errors"
	"github.com/Lisiadito/insomnia/internal/spec"
)

// Type selects the output flavor.
type Type string

const (
	TypeDeclarative Type = "declarative"
	TypeKubernetes  Type = "kubernetes"
)

// Types lists the supported values for the --type flag.
func Types() []Type {
	return []Type{TypeDeclarative, TypeKubernetes}
}

// ParseType validates a --type value.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case TypeDeclarative:
		return TypeDeclarative, nil
	case TypeKubernetes:
		return TypeKubernetes, nil
	default:
		names := make([]string, 0, len(Types()))
		for _, t := range Types() {
			names = append(names, string(t))
		}
		return "", errors.New(errors.ErrGenerate,
			fmt.Sprintf("invalid config type '%s'", s),
			fmt.Sprintf("valid types are: %s", strings.Join(names, ", ")))
	}
}

type declarativeConfig struct {
	FormatVersion string               `yaml:"_format_version"`
	Services      []declarativeService `yaml:"services"`
}

type declarativeService struct {
	Name   string             `yaml:"name"`
	URL    string             `yaml:"url"`
	Routes []declarativeRoute `yaml:"routes"`
}

type declarativeRoute struct {
	Name    string   `yaml:"name"`
	Methods []string `yaml:"methods"`
	Paths   []string `yaml:"paths"`
}

type ingressManifest struct {
	APIVersion string          `yaml:"apiVersion"`
	Kind       string          `yaml:"kind"`
	Metadata   ingressMetadata `yaml:"metadata"`
	Spec       ingressSpec     `yaml:"spec"`
}

type ingressMetadata struct {
	Name        string            `yaml:"name"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

type ingressSpec struct {
	Rules []ingressRule `yaml:"rules"`
}

type ingressRule struct {
	HTTP ingressHTTP `yaml:"http"`
}

type ingressHTTP struct {
	Paths []ingressPath `yaml:"paths"`
}

type ingressPath struct {
	Path     string         `yaml:"path"`
	PathType string         `yaml:"pathType"`
	Backend  ingressBackend `yaml:"backend"`
}

type ingressBackend struct {
	Service ingressService `yaml:"service"`
}

type ingressService struct {
	Name string             `yaml:"name"`
	Port ingressServicePort `yaml:"port"`
}

type ingressServicePort struct {
	Number int `yaml:"number"`
}

// Config renders the document as the requested configuration type.
func Config(doc *spec.Document, typ Type) ([]byte, error) {
	if doc.Name == "" {
		return nil, errors.New(errors.ErrGenerate, "spec has no name",
			"add a top-level 'name' to the spec before generating config")
	}

	switch typ {
	case TypeDeclarative:
		return renderDeclarative(doc)
	case TypeKubernetes:
		return renderKubernetes(doc)
	default:
		return nil, errors.New(errors.ErrGenerate, fmt.Sprintf("invalid config type '%s'", typ), "")
	}
}

func renderDeclarative(doc *spec.Document) ([]byte, error) {
	service := declarativeService{
		Name: serviceName(doc.Name),
		URL:  fmt.Sprintf("http://%s.upstream", serviceName(doc.Name)),
	}
	for _, op := range doc.Operations {
		service.Routes = append(service.Routes, declarativeRoute{
			Name:    fmt.Sprintf("%s-%s", service.Name, strings.ToLower(op.ID)),
			Methods: []string{strings.ToUpper(op.Method)},
			Paths:   []string{op.Path},
		})
	}

	out, err := yaml.Marshal(declarativeConfig{
		FormatVersion: "3.0",
		Services:      []declarativeService{service},
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrGenerate, "failed to render declarative config", "")
	}
	return out, nil
}

func renderKubernetes(doc *spec.Document) ([]byte, error) {
	// Ingress rules group by path, so collapse operations that share one.
	byPath := make(map[string]bool)
	for _, op := range doc.Operations {
		byPath[op.Path] = true
	}
	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	rule := ingressRule{}
	for _, p := range paths {
		rule.HTTP.Paths = append(rule.HTTP.Paths, ingressPath{
			Path:     p,
			PathType: "Prefix",
			Backend: ingressBackend{
				Service: ingressService{
					Name: serviceName(doc.Name),
					Port: ingressServicePort{Number: 80},
				},
			},
		})
	}

	out, err := yaml.Marshal(ingressManifest{
		APIVersion: "networking.k8s.io/v1",
		Kind:       "Ingress",
		Metadata: ingressMetadata{
			Name:        serviceName(doc.Name),
			Annotations: map[string]string{"kubernetes.io/ingress.class": "kong"},
		},
		Spec: ingressSpec{Rules: []ingressRule{rule}},
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrGenerate, "failed to render kubernetes config", "")
	}
	return out, nil
}

// serviceName normalizes a spec name into something usable as a
// DNS-1123 label.
func serviceName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '.', r == '-':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
