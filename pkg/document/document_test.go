package document

import (
	"errors"
	"strings"
	"testing"
)

const sampleJSON = `{
	"participants": [{"name": "Alice"}, {"name": "Bob"}],
	"messages": [
		{"sender_name": "Alice", "timestamp_ms": 1609495200123, "content": "hello"},
		{"sender_name": "Bob", "timestamp_ms": "1609495260456", "content": "hi"}
	],
	"title": "Alice and Bob",
	"is_still_participant": true,
	"thread_path": null
}`

func TestDecode_Kinds(t *testing.T) {
	root, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if root.Kind() != KindMapping {
		t.Fatalf("root Kind() = %v, want mapping", root.Kind())
	}

	msgs, ok := root.Get("messages")
	if !ok || msgs.Kind() != KindSequence {
		t.Fatalf("messages: ok=%v kind=%v, want sequence", ok, msgs.Kind())
	}
	if msgs.Len() != 2 {
		t.Errorf("messages Len() = %d, want 2", msgs.Len())
	}

	title, _ := root.Get("title")
	if title.Kind() != KindString || title.Str() != "Alice and Bob" {
		t.Errorf("title = %v %q", title.Kind(), title.Str())
	}

	flag, _ := root.Get("is_still_participant")
	if flag.Kind() != KindBool {
		t.Errorf("is_still_participant Kind() = %v, want bool", flag.Kind())
	}

	null, _ := root.Get("thread_path")
	if null.Kind() != KindNull {
		t.Errorf("thread_path Kind() = %v, want null", null.Kind())
	}
}

func TestNode_Int64PreservesMilliseconds(t *testing.T) {
	root, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	msgs, _ := root.Get("messages")

	first, _ := msgs.Items()[0].Get("timestamp_ms")
	got, err := first.Int64()
	if err != nil {
		t.Fatalf("Int64() error = %v", err)
	}
	if got != 1609495200123 {
		t.Errorf("Int64() = %d, want 1609495200123 (millisecond precision lost)", got)
	}
}

func TestNode_Int64FromString(t *testing.T) {
	// Some exports serialize epoch fields as strings.
	root, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	msgs, _ := root.Get("messages")

	second, _ := msgs.Items()[1].Get("timestamp_ms")
	got, err := second.Int64()
	if err != nil {
		t.Fatalf("Int64() error = %v", err)
	}
	if got != 1609495260456 {
		t.Errorf("Int64() = %d, want 1609495260456", got)
	}
}

func TestNode_FirstOf(t *testing.T) {
	root, err := Decode(strings.NewReader(`{"sender": "Alice"}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	node, ok := root.FirstOf("sender_name", "sender")
	if !ok {
		t.Fatal("FirstOf() missed the second alias")
	}
	if node.Str() != "Alice" {
		t.Errorf("Str() = %q, want Alice", node.Str())
	}
}

func TestRequire_SchemaMismatch(t *testing.T) {
	root, err := Decode(strings.NewReader(`{"who": "Alice"}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	_, err = Require(root, "author", "sender_name", "sender")
	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Require() = %v, want SchemaMismatchError", err)
	}
	if mismatch.Field != "author" {
		t.Errorf("Field = %q, want author", mismatch.Field)
	}
	if len(mismatch.Aliases) != 2 {
		t.Errorf("Aliases = %v, want the tried aliases", mismatch.Aliases)
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"messages": [`)); err == nil {
		t.Error("Decode() accepted truncated JSON")
	}
}

func TestNode_NilSafety(t *testing.T) {
	var n *Node
	if n.Kind() != KindNull {
		t.Errorf("nil Kind() = %v, want null", n.Kind())
	}
	if n.Str() != "" || n.Text() != "" {
		t.Error("nil scalar accessors should return empty strings")
	}
	if _, ok := n.Get("x"); ok {
		t.Error("nil Get() should miss")
	}
	if n.Items() != nil || n.Len() != 0 {
		t.Error("nil sequence accessors should be empty")
	}
}

func TestFromValue_GenericTree(t *testing.T) {
	v := map[string]any{
		"messages": []any{
			map[string]any{"from": "Alice", "text": "hi", "id": 7},
		},
	}
	root, err := FromValue(v)
	if err != nil {
		t.Fatalf("FromValue() error = %v", err)
	}

	msgs, _ := root.Get("messages")
	entry := msgs.Items()[0]
	id, _ := entry.Get("id")
	got, err := id.Int64()
	if err != nil || got != 7 {
		t.Errorf("id = %d, %v, want 7", got, err)
	}
}
