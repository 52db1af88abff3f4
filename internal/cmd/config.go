package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/tankpad/tankpad/internal/configpaths"
	"github.com/tankpad/tankpad/mapping"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init    ConfigInit    `cmd:"" help:"Generate a configuration template for a command"`
	Mapping ConfigMapping `cmd:"" help:"Write the built-in gamepad mapping so it can be edited"`
}

type OutputOptions struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (o OutputOptions) write(defaultBase string, data []byte) (string, error) {
	dest := o.Output
	if dest == "" {
		dest = defaultBase + "." + configpaths.Ext(o.Format)
	}
	if !o.Force {
		if _, err := os.Stat(dest); err == nil {
			return "", fmt.Errorf("%s exists; use --force to overwrite", dest)
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return "", err
	}
	return dest, os.WriteFile(dest, data, 0o644)
}

// ConfigInit scaffolds a configuration file from a command's flags and
// their defaults.
type ConfigInit struct {
	Command    string `arg:"" name:"command" help:"Command to generate config for" enum:"run,monitor,panel"`
	OutputOptions `embed:""`
}

func (c *ConfigInit) Run() error {
	var root map[string]any
	switch c.Command {
	case "run":
		root = buildMapFromStruct(reflect.TypeOf(Run{}))
	case "monitor":
		root = buildMapFromStruct(reflect.TypeOf(Monitor{}))
	case "panel":
		root = buildMapFromStruct(reflect.TypeOf(PanelCommand{}))
	default:
		return errors.New("unknown command; expected run, monitor or panel")
	}
	data, err := marshalTemplate(root, c.Format)
	if err != nil {
		return err
	}
	dest, err := c.write(c.Command, data)
	if err != nil {
		return err
	}
	fmt.Println(dest)
	return nil
}

// ConfigMapping writes mapping.DefaultConfig.
type ConfigMapping struct {
	OutputOptions `embed:""`
}

func (c *ConfigMapping) Run() error {
	data, err := mapping.Encode(mapping.DefaultConfig(), c.Format)
	if err != nil {
		return err
	}
	dest, err := c.write("mapping", data)
	if err != nil {
		return err
	}
	fmt.Println(dest)
	return nil
}

func marshalTemplate(root map[string]any, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	case "json", "":
		return json.MarshalIndent(root, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// flagName derives the kebab-case key kong uses for a field.
func flagName(f reflect.StructField) string {
	if n := f.Tag.Get("name"); n != "" {
		return n
	}
	rs := []rune(f.Name)
	var b strings.Builder
	for i, r := range rs {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(rs[i-1])
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prevLower || (unicode.IsUpper(rs[i-1]) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// buildMapFromStruct mirrors the flag tree of a kong command struct,
// nesting embedded prefixed structs. Subcommands and args are skipped.
func buildMapFromStruct(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("cmd"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			sub := buildMapFromStruct(f.Type)
			if name := strings.TrimSuffix(f.Tag.Get("prefix"), "."); name != "" {
				out[name] = sub
			} else {
				for k, v := range sub {
					out[k] = v
				}
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if val := defaultValue(f.Type, f.Tag.Get("default")); val != nil {
			out[flagName(f)] = val
		}
	}
	return out
}

func defaultValue(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "time" && t.Name() == "Duration" {
		if def == "" {
			return "0s"
		}
		return def
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 10, 64)
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 10, 64)
		return n
	case reflect.Float32, reflect.Float64:
		f, _ := strconv.ParseFloat(def, 64)
		return f
	case reflect.Struct:
		return buildMapFromStruct(t)
	default:
		return nil
	}
}
