package manifest

import "fmt"

// Entry is one default key/value pair.
type Entry struct {
	Key   string
	Value string
}

// ScriptDefaults are the npm script aliases added to package.json when the
// generator did not declare them.
var ScriptDefaults = []Entry{
	{"start", "ng serve"},
	{"build", "ng build"},
	{"test", "ng test"},
	{"lint", "eslint ."},
	{"lint:fix", "eslint . --fix"},
	{"format", "prettier --write ."},
	{"format:check", "prettier --check ."},
}

// DevDependencyDefaults are the pinned lint/format tooling ranges.
var DevDependencyDefaults = []Entry{
	{"prettier", "^3.3.0"},
	{"eslint", "^9.0.0"},
	{"@typescript-eslint/parser", "^7.0.0"},
	{"@typescript-eslint/eslint-plugin", "^7.0.0"},
	{"@angular-eslint/eslint-plugin", "^20.0.0"},
	{"@angular-eslint/eslint-plugin-template", "^20.0.0"},
	{"@angular-eslint/template-parser", "^20.0.0"},
	{"eslint-plugin-import", "^2.29.0"},
	{"eslint-config-prettier", "^9.1.0"},
}

// ObjectOf builds an object from entries, in order.
func ObjectOf(entries []Entry) *Object {
	obj := NewObject()
	for _, e := range entries {
		obj.Set(e.Key, e.Value)
	}
	return obj
}

// InstallSpecs renders entries as name@range package specs.
func InstallSpecs(entries []Entry) []string {
	specs := make([]string, 0, len(entries))
	for _, e := range entries {
		specs = append(specs, e.Key+"@"+e.Value)
	}
	return specs
}

// MergeDefaults returns a copy of target in which every key of defaults that
// target lacks has been appended, in the order of defaults. Keys already in
// target keep their value and position. Neither argument is modified.
func MergeDefaults(target, defaults *Object) *Object {
	out := target.Clone()
	for _, k := range defaults.Keys() {
		v, _ := defaults.Get(k)
		out.SetDefault(k, cloneValue(v))
	}
	return out
}

// PatchManifest fills in the default scripts and devDependencies of a
// package.json object.
func PatchManifest(pkg *Object) error {
	if err := mergeChild(pkg, "scripts", ObjectOf(ScriptDefaults)); err != nil {
		return err
	}
	return mergeChild(pkg, "devDependencies", ObjectOf(DevDependencyDefaults))
}

func mergeChild(parent *Object, key string, defaults *Object) error {
	child, err := parent.Child(key)
	if err != nil {
		return fmt.Errorf("package.json: %w", err)
	}
	parent.Set(key, MergeDefaults(child, defaults))
	return nil
}

// PatchCompilerConfig forces compilerOptions.strict and
// angularCompilerOptions.strictTemplates to true. Missing or non-object
// option blocks are replaced by objects.
func PatchCompilerConfig(ts *Object) {
	forceFlag(ts, "compilerOptions", "strict")
	forceFlag(ts, "angularCompilerOptions", "strictTemplates")
}

func forceFlag(ts *Object, block, flag string) {
	child, err := ts.Child(block)
	if err != nil {
		child = NewObject()
		ts.Set(block, child)
	}
	child.Set(flag, true)
}
