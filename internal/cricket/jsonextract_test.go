package cricket

import "testing"

func TestExtractBalanced(t *testing.T) {
	source := `prefix {"a":{"b":1},"c":[2]} suffix`

	chunk, end, ok := extractBalanced(source, 7)
	if !ok {
		t.Fatalf("expected a balanced chunk")
	}
	if chunk != `{"a":{"b":1},"c":[2]}` {
		t.Fatalf("unexpected chunk: %q", chunk)
	}
	if source[end:] != " suffix" {
		t.Fatalf("end should point past the chunk, got %q", source[end:])
	}

	if _, _, ok := extractBalanced(`{"a":1`, 0); ok {
		t.Fatalf("expected not ok for a truncated chunk")
	}
	if _, _, ok := extractBalanced("plain", 0); ok {
		t.Fatalf("expected not ok when start is not an opener")
	}
	if _, _, ok := extractBalanced("{}", 5); ok {
		t.Fatalf("expected not ok for out of range start")
	}
}

func TestDecodeEscapedJSON(t *testing.T) {
	var plain map[string]any
	if !decodeEscapedJSON(`{"key":"value"}`, &plain) || plain["key"] != "value" {
		t.Fatalf("plain json should decode: %v", plain)
	}

	var escaped map[string]any
	if !decodeEscapedJSON(`{\"key\":\"value\"}`, &escaped) || escaped["key"] != "value" {
		t.Fatalf("escaped json should decode: %v", escaped)
	}

	var broken map[string]any
	if decodeEscapedJSON(`{"key":`, &broken) {
		t.Fatalf("truncated json should not decode")
	}
}

func TestPickObjectByKey(t *testing.T) {
	html := `<script>var a = {"matchInfo":{"matchId":118928,"state":"inprogress"}};</script>`

	obj := pickObjectByKey(html, "matchInfo")
	if obj == nil {
		t.Fatalf("expected an object")
	}
	if id, _ := getInt(obj, "matchId"); id != 118928 {
		t.Fatalf("unexpected matchId: %v", obj["matchId"])
	}

	if got := pickObjectByKey(html, "missing"); got != nil {
		t.Fatalf("expected nil for an absent key")
	}
}

func TestPickObjectByKeyEscaped(t *testing.T) {
	html := `<script>self.__next_f.push("{\"miniScore\":{\"overs\":\"13.2\",\"crr\":7.2}}")</script>`

	obj := pickObjectByKey(html, "miniScore")
	if obj == nil {
		t.Fatalf("expected the escaped object to decode")
	}
	if getText(obj, "overs") != "13.2" {
		t.Fatalf("unexpected overs: %v", obj["overs"])
	}
}

func TestPickObjectByKeySkipsUndecodable(t *testing.T) {
	html := `{"header":{broken} {"header":{"ok":true}`

	obj := pickObjectByKey(html, "header")
	if obj == nil {
		t.Fatalf("expected the second occurrence to decode")
	}
	if !getBool(obj, "ok") {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestPickAllObjectsByKey(t *testing.T) {
	html := `{"matchHeader":{"matchId":1}} {"matchHeader":{"matchId":2}}`

	objects := pickAllObjectsByKey(html, "matchHeader")
	if len(objects) != 2 {
		t.Fatalf("expected both occurrences, got %d", len(objects))
	}
	if id, _ := getInt(objects[1], "matchId"); id != 2 {
		t.Fatalf("unexpected second object: %v", objects[1])
	}
}

func TestPickAllArraysByKey(t *testing.T) {
	html := `{"scoreCard":[{"inningsId":1}]} {"scoreCard":[{"inningsId":2},{"inningsId":3}]}`

	arrays := pickAllArraysByKey(html, "scoreCard")
	if len(arrays) != 2 {
		t.Fatalf("expected two arrays, got %d", len(arrays))
	}
	if len(arrays[1]) != 2 {
		t.Fatalf("unexpected second array: %v", arrays[1])
	}
}
