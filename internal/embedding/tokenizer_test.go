package embedding

import "testing"

func TestSimpleTokenizer_Tokenize(t *testing.T) {
	tok := &SimpleTokenizer{}
	inputIDs, attentionMask, tokenTypeIDs := tok.Tokenize("hello world", 8)
	if len(inputIDs) != 8 || len(attentionMask) != 8 || len(tokenTypeIDs) != 8 {
		t.Fatalf("lengths: %d %d %d", len(inputIDs), len(attentionMask), len(tokenTypeIDs))
	}
	if inputIDs[0] != 101 {
		t.Errorf("expected [CLS] at position 0, got %d", inputIDs[0])
	}
	// two words plus [CLS] and [SEP]
	if attentionMask[3] != 1 {
		t.Error("expected [SEP] attention at position 3")
	}
	if attentionMask[4] != 0 {
		t.Error("expected padding after [SEP]")
	}
}

func TestSimpleTokenizer_deterministic(t *testing.T) {
	tok := &SimpleTokenizer{}
	a, _, _ := tok.Tokenize("same text", 16)
	b, _, _ := tok.Tokenize("same text", 16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("token IDs differ at %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestSimpleTokenizer_truncatesLongText(t *testing.T) {
	tok := &SimpleTokenizer{}
	inputIDs, _, _ := tok.Tokenize("a b c d e f g h i j", 4)
	if len(inputIDs) != 4 {
		t.Fatalf("length: got %d", len(inputIDs))
	}
}

func TestHashString(t *testing.T) {
	if HashString("abc") != HashString("abc") {
		t.Error("hash should be deterministic")
	}
	if HashString("abc") < 0 {
		t.Error("hash should be non-negative")
	}
}
