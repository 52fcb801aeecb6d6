package regexcache

import "testing"

func TestGet_CachesCompiledRegex(t *testing.T) {
	Clear()
	first, err := Get(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Get(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Get returned a different instance for a cached pattern")
	}
}

func TestGet_InvalidPattern(t *testing.T) {
	if _, err := Get(`(`); err == nil {
		t.Error("Get(`(`) returned nil error")
	}
}

func TestMustGet_PanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet did not panic on an invalid pattern")
		}
	}()
	MustGet(`[`)
}

func TestGet_MatchWorks(t *testing.T) {
	re := MustGet(`^ab+c$`)
	if !re.MatchString("abbbc") {
		t.Error("cached regex failed to match")
	}
}
