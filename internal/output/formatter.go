package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
	"github.com/tidwall/pretty"
)

// Formatter is the interface for output formatting
type Formatter interface {
	Print(data any) error
	PrintResult(r Result) error
	PrintList(items any, columns []Column) error
	PrintError(err error)
	PrintHint(msg string)
	PrintWarning(msg string)
}

// Column defines a column for table/list output
type Column struct {
	Name  string // Display name
	Key   string // Struct field name or map key
	Width int    // Width for rich mode (0 = auto)
}

// Result is the outcome of one tool run
type Result struct {
	Tool       string `json:"tool"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	Warning    string `json:"warning,omitempty"`
	Structured bool   `json:"structured,omitempty"`
	// Highlight marks output lines to emphasize in rich mode
	Highlight func(line string) bool `json:"-"`
}

// New creates a formatter for the specified mode writing to stdout and stderr
func New(mode string) Formatter {
	return NewWithWriters(mode, os.Stdout, os.Stderr)
}

// NewWithWriters creates a formatter for the specified mode
func NewWithWriters(mode string, out, errOut io.Writer) Formatter {
	switch mode {
	case "json":
		return &jsonFormatter{out: out, errOut: errOut}
	case "rich":
		return &richFormatter{out: out, errOut: errOut, profile: termenv.ColorProfile()}
	default:
		return &plainFormatter{out: out, errOut: errOut}
	}
}

// jsonFormatter outputs JSON documents
type jsonFormatter struct {
	out    io.Writer
	errOut io.Writer
}

func (f *jsonFormatter) Print(data any) error {
	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

func (f *jsonFormatter) PrintResult(r Result) error {
	return f.Print(r)
}

func (f *jsonFormatter) PrintList(items any, columns []Column) error {
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	count := 0
	if v.Kind() == reflect.Slice {
		count = v.Len()
	}

	envelope := map[string]any{
		"data":  items,
		"count": count,
	}

	return f.Print(envelope)
}

func (f *jsonFormatter) PrintError(err error) {
	enc := json.NewEncoder(f.errOut)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]string{"error": err.Error()})
}

func (f *jsonFormatter) PrintHint(msg string) {
	// Hints are for humans; JSON consumers get the error only
}

func (f *jsonFormatter) PrintWarning(msg string) {
	enc := json.NewEncoder(f.errOut)
	enc.SetIndent("", "  ")
	_ = enc.Encode(map[string]string{"warning": msg})
}

// plainFormatter outputs bare text and tab-separated values
type plainFormatter struct {
	out    io.Writer
	errOut io.Writer
}

func (f *plainFormatter) Print(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			fmt.Fprintf(f.out, "%s\t%v\n", t.Field(i).Name, v.Field(i).Interface())
		}
		return nil
	}

	fmt.Fprintf(f.out, "%v\n", data)
	return nil
}

func (f *plainFormatter) PrintResult(r Result) error {
	if r.Warning != "" {
		f.PrintWarning(r.Warning)
	}
	if r.Output == "" {
		return nil
	}
	_, err := fmt.Fprintln(f.out, strings.TrimSuffix(r.Output, "\n"))
	return err
}

func (f *plainFormatter) PrintList(items any, columns []Column) error {
	rows, err := listRows(items, columns)
	if err != nil {
		return err
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}
	fmt.Fprintf(f.out, "%s\n", strings.Join(headers, "\t"))

	for _, row := range rows {
		values := make([]string, len(columns))
		for j, col := range columns {
			values[j] = row[col.Key]
		}
		fmt.Fprintf(f.out, "%s\n", strings.Join(values, "\t"))
	}

	return nil
}

func (f *plainFormatter) PrintError(err error) {
	fmt.Fprintf(f.errOut, "error: %v\n", err)
}

func (f *plainFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errOut, "hint: %v\n", msg)
}

func (f *plainFormatter) PrintWarning(msg string) {
	fmt.Fprintf(f.errOut, "warning: %v\n", msg)
}

// richFormatter outputs styled content for terminal
type richFormatter struct {
	out     io.Writer
	errOut  io.Writer
	profile termenv.Profile
}

var (
	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hintStyle      = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8"))
)

func (f *richFormatter) Print(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			fmt.Fprintf(f.out, "%s: %s\n",
				keyStyle.Render(t.Field(i).Name),
				valueStyle.Render(fmt.Sprintf("%v", v.Field(i).Interface())),
			)
		}
		return nil
	}

	fmt.Fprintf(f.out, "%v\n", data)
	return nil
}

func (f *richFormatter) PrintResult(r Result) error {
	if r.Warning != "" {
		f.PrintWarning(r.Warning)
	}
	if r.Output == "" {
		return nil
	}

	text := strings.TrimSuffix(r.Output, "\n")
	switch {
	case r.Structured && f.profile != termenv.Ascii:
		text = strings.TrimSuffix(string(pretty.Color([]byte(text), nil)), "\n")
	case r.Highlight != nil:
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if r.Highlight(line) {
				lines[i] = highlightStyle.Render(line)
			}
		}
		text = strings.Join(lines, "\n")
	}

	_, err := fmt.Fprintln(f.out, text)
	return err
}

func (f *richFormatter) PrintList(items any, columns []Column) error {
	rows, err := listRows(items, columns)
	if err != nil {
		return err
	}

	RenderTable(f.out, columns, rows)
	return nil
}

func (f *richFormatter) PrintError(err error) {
	fmt.Fprintf(f.errOut, "%s\n", errorStyle.Render("error: "+err.Error()))
}

func (f *richFormatter) PrintHint(msg string) {
	fmt.Fprintf(f.errOut, "%s\n", hintStyle.Render("hint: "+msg))
}

func (f *richFormatter) PrintWarning(msg string) {
	fmt.Fprintf(f.errOut, "%s\n", warningStyle.Render("⚠ "+msg))
}

// listRows flattens a slice of structs or maps into rows keyed by column key
func listRows(items any, columns []Column) ([]map[string]string, error) {
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("PrintList requires a slice")
	}

	rows := make([]map[string]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := v.Index(i)
		if item.Kind() == reflect.Ptr {
			item = item.Elem()
		}

		row := make(map[string]string, len(columns))
		for _, col := range columns {
			if item.Kind() == reflect.Map {
				mapVal := item.MapIndex(reflect.ValueOf(col.Key))
				if mapVal.IsValid() {
					row[col.Key] = fmt.Sprintf("%v", mapVal.Interface())
				}
			} else if item.Kind() == reflect.Struct {
				field := item.FieldByName(col.Key)
				if field.IsValid() {
					row[col.Key] = fmt.Sprintf("%v", field.Interface())
				}
			}
		}
		rows[i] = row
	}

	return rows, nil
}
