package prompts

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"text/template/parse"
)

// Catalog holds registered embedded prompts by key.
type Catalog struct {
	mu       sync.RWMutex
	embedded map[string]EmbeddedPrompt
	logger   *slog.Logger
}

// NewCatalog creates an empty prompt catalog.
func NewCatalog(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		embedded: make(map[string]EmbeddedPrompt),
		logger:   logger,
	}
}

// Register adds an embedded prompt, filling in its hash and variables.
// Registering the same key twice replaces the earlier entry.
func (c *Catalog) Register(prompt EmbeddedPrompt) {
	if prompt.Hash == "" {
		prompt.Hash = HashText(prompt.Text)
	}
	if prompt.Variables == nil {
		prompt.Variables = ExtractVariables(prompt.Text)
	}

	c.mu.Lock()
	c.embedded[prompt.Key] = prompt
	c.mu.Unlock()

	c.logger.Debug("registered embedded prompt", "key", prompt.Key, "vars", prompt.Variables)
}

// Get returns the prompt registered under key.
func (c *Catalog) Get(key string) (EmbeddedPrompt, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.embedded[key]
	if !ok {
		return EmbeddedPrompt{}, fmt.Errorf("prompt not found: %s", key)
	}
	return p, nil
}

// All returns every registered prompt sorted by key.
func (c *Catalog) All() []EmbeddedPrompt {
	c.mu.RLock()
	result := make([]EmbeddedPrompt, 0, len(c.embedded))
	for _, p := range c.embedded {
		result = append(result, p)
	}
	c.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// HashText returns a SHA256 hash of the text for change detection.
func HashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// ExtractVariables lists the fields of the template data a prompt reads,
// sorted and without duplicates. Nested fields keep their path, so
// "{{.Meta.Date}}" yields "Meta.Date". Inside range and with blocks dot is
// the element, so only "$."-rooted references count there; the ranged
// field itself is reported. Unparseable text yields nil.
func ExtractVariables(text string) []string {
	tree := parse.New("prompt")
	tree.Mode = parse.SkipFuncCheck
	if _, err := tree.Parse(text, "", "", map[string]*parse.Tree{}); err != nil {
		return nil
	}

	seen := make(map[string]bool)
	collectFields(tree.Root, false, seen)

	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

// collectFields walks n recording root data fields. nested is true once
// dot has been rebound by range or with.
func collectFields(n parse.Node, nested bool, seen map[string]bool) {
	switch n := n.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			collectFields(c, nested, seen)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, nested, seen)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			collectFields(cmd, nested, seen)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			collectFields(arg, nested, seen)
		}
	case *parse.ChainNode:
		collectFields(n.Node, nested, seen)
	case *parse.FieldNode:
		if !nested {
			seen[strings.Join(n.Ident, ".")] = true
		}
	case *parse.VariableNode:
		if len(n.Ident) > 1 && n.Ident[0] == "$" {
			seen[strings.Join(n.Ident[1:], ".")] = true
		}
	case *parse.IfNode:
		collectFields(n.Pipe, nested, seen)
		collectFields(n.List, nested, seen)
		collectFields(n.ElseList, nested, seen)
	case *parse.RangeNode:
		collectFields(n.Pipe, nested, seen)
		collectFields(n.List, true, seen)
		collectFields(n.ElseList, nested, seen)
	case *parse.WithNode:
		collectFields(n.Pipe, nested, seen)
		collectFields(n.List, true, seen)
		collectFields(n.ElseList, nested, seen)
	case *parse.TemplateNode:
		collectFields(n.Pipe, nested, seen)
	}
}
