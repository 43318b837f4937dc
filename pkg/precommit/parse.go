package precommit

import (
	"fmt"
	"os"

	"github.com/grovetools/hookcheck/errors"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ParseFile reads and parses the document at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrCodeDocumentNotFound, "pre-commit configuration not found").
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDocumentParse, "failed to read pre-commit configuration").
			WithDetail("path", path)
	}

	doc, err := Parse(data)
	if err != nil {
		if e, ok := errors.As(err); ok {
			e.WithDetail("path", path)
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse decodes a document. It fails only when the input is not well-formed
// YAML or its root is not a mapping; fields of the wrong shape are left at
// their zero value so that a validator can report all of them at once.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.DocumentParse("", err)
	}
	if err := checkAliases(&root); err != nil {
		return nil, errors.DocumentParse("", err)
	}

	body := Body(&root)
	if root.Kind == 0 || body == nil {
		return nil, errors.DocumentParse("", fmt.Errorf("document is empty"))
	}
	if body.Kind != yaml.MappingNode {
		return nil, errors.DocumentParse("", fmt.Errorf("line %d: expected a mapping at the document root", body.Line))
	}

	return decodeDocument(&root, body), nil
}

func decodeDocument(root, body *yaml.Node) *Document {
	doc := &Document{
		root:   root,
		fields: make(map[string]Position),
	}

	for _, p := range Pairs(body) {
		doc.fields[p.Key.Value] = positionOf(p.Value)

		switch p.Key.Value {
		case "ci":
			doc.CI = decodeCI(p.Value)
		case "repos":
			doc.Repos = nil
			if p.Value.Kind != yaml.SequenceNode {
				continue
			}
			for _, item := range p.Value.Content {
				if src, ok := decodeSource(resolve(item)); ok {
					doc.Repos = append(doc.Repos, src)
				}
			}
		case "default_install_hook_types":
			doc.DefaultInstallHookTypes = stringList(p.Value)
		case "default_language_version":
			doc.DefaultLanguageVersion = stringMap(p.Value)
		case "default_stages":
			doc.DefaultStages = stringList(p.Value)
		case "files":
			doc.Files = scalarString(p.Value)
		case "exclude":
			doc.Exclude = scalarString(p.Value)
		case "fail_fast":
			doc.FailFast, _ = scalarBool(p.Value)
		case "minimum_pre_commit_version":
			doc.MinimumPreCommitVersion = scalarString(p.Value)
		}
	}

	return doc
}

func decodeCI(n *yaml.Node) CI {
	var ci CI
	raw := make(map[string]interface{})
	for _, p := range Pairs(n) {
		value := ToValue(p.Value)
		ci.Options = append(ci.Options, CIOption{
			Name:     p.Key.Value,
			Value:    value,
			Position: positionOf(p.Key),
		})
		raw[p.Key.Value] = value
	}

	// Shape errors are the schema's to report; keep whatever decodes.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &ci.Settings,
	})
	if err == nil {
		_ = decoder.Decode(raw)
	}
	return ci
}

func decodeSource(n *yaml.Node) (HookSource, bool) {
	if n == nil || n.Kind != yaml.MappingNode {
		return HookSource{}, false
	}
	src := HookSource{
		Position: positionOf(n),
		fields:   make(map[string]Position),
	}
	for _, p := range Pairs(n) {
		src.fields[p.Key.Value] = positionOf(p.Value)
		switch p.Key.Value {
		case "repo":
			src.Repo = scalarString(p.Value)
		case "rev":
			src.Rev = scalarString(p.Value)
		case "hooks":
			src.Hooks = nil
			if p.Value.Kind != yaml.SequenceNode {
				continue
			}
			for _, item := range p.Value.Content {
				if hook, ok := decodeHook(resolve(item)); ok {
					src.Hooks = append(src.Hooks, hook)
				}
			}
		}
	}
	return src, true
}

func decodeHook(n *yaml.Node) (HookEntry, bool) {
	if n == nil || n.Kind != yaml.MappingNode {
		return HookEntry{}, false
	}
	hook := HookEntry{
		Position: positionOf(n),
		fields:   make(map[string]Position),
	}
	for _, p := range Pairs(n) {
		hook.fields[p.Key.Value] = positionOf(p.Value)
		v := p.Value
		switch p.Key.Value {
		case "id":
			hook.ID = scalarString(v)
		case "alias":
			hook.Alias = scalarString(v)
		case "name":
			hook.Name = scalarString(v)
		case "entry":
			hook.Entry = scalarString(v)
		case "language":
			hook.Language = scalarString(v)
		case "language_version":
			hook.LanguageVersion = scalarString(v)
		case "files":
			hook.Files = scalarString(v)
		case "exclude":
			hook.Exclude = scalarString(v)
		case "types":
			hook.Types = stringList(v)
		case "types_or":
			hook.TypesOr = stringList(v)
		case "exclude_types":
			hook.ExcludeTypes = stringList(v)
		case "args":
			hook.Args = stringList(v)
		case "additional_dependencies":
			hook.AdditionalDependencies = stringList(v)
		case "stages":
			hook.Stages = stringList(v)
		case "always_run":
			if b, ok := scalarBool(v); ok {
				hook.AlwaysRun = &b
			}
		case "pass_filenames":
			if b, ok := scalarBool(v); ok {
				hook.PassFilenames = &b
			}
		case "verbose":
			hook.Verbose, _ = scalarBool(v)
		}
	}
	return hook, true
}
