package openapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "signup.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func signupSchema(t *testing.T) openapi.Schema {
	t.Helper()
	schema, err := openapi.RulesFromDocument(testsupport.Context(), readFixture(t), "Signup")
	if err != nil {
		t.Fatalf("rules from document: %v", err)
	}
	return schema
}

func TestRulesFromDocumentAttributes(t *testing.T) {
	schema := signupSchema(t)

	type attr struct {
		Name   string
		Kind   model.Kind
		Widget string
	}
	got := make([]attr, 0, len(schema.Attributes))
	for _, decl := range schema.Attributes {
		got = append(got, attr{Name: decl.Name, Kind: decl.Kind, Widget: decl.Widget})
	}
	want := []attr{
		{Name: "address.city", Kind: model.KindString},
		{Name: "address.zip", Kind: model.KindString},
		{Name: "age", Kind: model.KindInt},
		{Name: "birthday", Kind: model.KindTime},
		{Name: "email", Kind: model.KindString},
		{Name: "name", Kind: model.KindString},
		{Name: "newsletter", Kind: model.KindBool},
		{Name: "plan", Kind: model.KindString},
		{Name: "tags", Kind: model.KindStrings, Widget: widgets.WidgetCheckboxList},
		{Name: "website", Kind: model.KindString},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(map[string]string{"address.city": "City", "email": "Email address"}, schema.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string][]string{"plan": {"free", "pro"}, "tags": {"news", "offers"}}, schema.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesFromDocumentRules(t *testing.T) {
	schema := signupSchema(t)

	want := map[string][]validation.Rule{
		"address.city": {validation.Required()},
		"address.zip":  {validation.Pattern("^[0-9]{5}$")},
		"age":          {validation.Min(18), validation.Max(130)},
		"email":        {validation.Required(), validation.Email()},
		"name":         {validation.Required(), validation.MinLength(2), validation.MaxLength(40)},
		"plan":         {validation.In("free", "pro")},
		"website":      {validation.URL()},
	}
	if diff := cmp.Diff(want, schema.Rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaForm(t *testing.T) {
	schema := signupSchema(t)

	form, err := schema.Form("Signup")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if value, _ := form.Value("plan"); value != "free" {
		t.Fatalf("expected plan default, got %v", value)
	}
	if value, _ := form.Value("newsletter"); value != true {
		t.Fatalf("expected newsletter default, got %v", value)
	}
	if form.Hint("name") != "Shown on your profile" {
		t.Fatalf("unexpected hint %q", form.Hint("name"))
	}
	if name, _ := form.InputName("address.city"); name != "Signup[address][city]" {
		t.Fatalf("unexpected input name %q", name)
	}

	if form.Validate() {
		t.Fatalf("expected validation to fail")
	}
	if got := form.FirstError("email"); got != "Email address cannot be blank." {
		t.Fatalf("unexpected email error %q", got)
	}

	html, err := widgets.Field(form, "plan", schema.FieldOptions()["plan"]...)
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	if !strings.Contains(html, `<option value="free" selected>free</option>`) {
		t.Fatalf("expected selected enum option\n%s", html)
	}
}

func TestRulesFromDocumentErrors(t *testing.T) {
	ctx := testsupport.Context()
	data := readFixture(t)

	if _, err := openapi.RulesFromDocument(ctx, data, "Missing"); !errors.Is(err, openapi.ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}
	if _, err := openapi.RulesFromDocument(ctx, data, "Broken"); err == nil || !strings.Contains(err.Error(), `property "payload"`) {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
	if _, err := openapi.RulesFromDocument(ctx, nil, "Signup"); err == nil {
		t.Fatalf("expected empty payload error")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openapi.RulesFromDocument(cancelled, data, "Signup"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestComponents(t *testing.T) {
	doc, err := openapi.Load(testsupport.Context(), readFixture(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"Address", "Broken", "Signup"}, openapi.Components(doc)); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
	if openapi.Components(nil) != nil {
		t.Fatalf("expected nil components for nil document")
	}
}

func TestFromSchemaStopsOnCycles(t *testing.T) {
	node := &openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{
			"label": {Value: &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}},
		},
	}
	node.Properties["parent"] = &openapi3.SchemaRef{Value: node}

	schema, err := openapi.FromSchema(node)
	if err != nil {
		t.Fatalf("from schema: %v", err)
	}
	if len(schema.Attributes) != 1 || schema.Attributes[0].Name != "label" {
		t.Fatalf("unexpected attributes %#v", schema.Attributes)
	}

	if _, err := openapi.FromSchema(&openapi3.Schema{}); err == nil {
		t.Fatalf("expected error for schema without properties")
	}
}

func TestReadDocument(t *testing.T) {
	ctx := testsupport.Context()
	files := fstest.MapFS{"specs/api.yaml": {Data: []byte("openapi: 3.0.3")}}

	data, err := openapi.ReadDocument(ctx, "specs/api.yaml", openapi.WithFileSystem(files))
	if err != nil {
		t.Fatalf("read from fs: %v", err)
	}
	if string(data) != "openapi: 3.0.3" {
		t.Fatalf("unexpected payload %q", data)
	}

	if _, err := openapi.ReadDocument(ctx, "missing.yaml", openapi.WithFileSystem(files)); err == nil {
		t.Fatalf("expected missing file error")
	}
	if _, err := openapi.ReadDocument(ctx, "https://example.com/api.yaml"); !errors.Is(err, openapi.ErrRemoteDisabled) {
		t.Fatalf("expected ErrRemoteDisabled, got %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("remote"))
	}))
	defer server.Close()

	data, err = openapi.ReadDocument(ctx, server.URL+"/api.yaml", openapi.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != "remote" {
		t.Fatalf("unexpected remote payload %q", data)
	}
	if _, err := openapi.ReadDocument(ctx, server.URL+"/other.yaml", openapi.WithHTTPClient(server.Client())); err == nil {
		t.Fatalf("expected status error")
	}
}
