package fileguard

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
)

// Shared fixtures: leading signature bytes padded to a realistic length.
var (
	pngHeader  = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 100)...)
	jpegHeader = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 100)...)
	exeHeader  = append([]byte("MZ"), make([]byte, 100)...)
	pdfHeader  = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	vttHeader  = []byte("WEBVTT\n\n00:00:00.000 --> 00:00:02.000\nhello\n")
)

// failingClassifier simulates a broken classification engine.
type failingClassifier struct{}

func (failingClassifier) Classify([]byte) (string, error) {
	return "", errors.New("signature database corrupted")
}

// blankClassifier returns an empty type, which the guard must refuse.
type blankClassifier struct{}

func (blankClassifier) Classify([]byte) (string, error) {
	return "", nil
}

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
		want string
	}{
		{name: "png", blob: pngHeader, want: "image/png"},
		{name: "jpeg", blob: jpegHeader, want: "image/jpeg"},
		{name: "pdf", blob: pdfHeader, want: "application/pdf"},
		{name: "webvtt", blob: vttHeader, want: "text/vtt"},
		{name: "plain text", blob: []byte("hello, world\n"), want: "text/plain"},
		{name: "json", blob: []byte(`{"key": "value"}`), want: "application/json"},
		{name: "unrecognized", blob: make([]byte, 64), want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFileType(tt.blob)
			if err != nil {
				t.Fatalf("DetectFileType() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFileType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetectFileType_Executable(t *testing.T) {
	got, err := DetectFileType(exeHeader)
	if err != nil {
		t.Fatalf("DetectFileType() error = %v", err)
	}
	if !strings.HasPrefix(got, "application/") {
		t.Errorf("DetectFileType() = %s, want an application/* type", got)
	}
}

func TestDetectFileType_EmptyBlob(t *testing.T) {
	_, err := DetectFileType(nil)
	if !IsErrorOfType(err, ErrorTypeInput) {
		t.Errorf("DetectFileType(nil) error = %v, want input error", err)
	}

	_, err = DetectFileType([]byte{})
	if !IsErrorOfType(err, ErrorTypeInput) {
		t.Errorf("DetectFileType(empty) error = %v, want input error", err)
	}
}

func TestDetectFileType_NeverEmptyString(t *testing.T) {
	blobs := [][]byte{pngHeader, exeHeader, []byte("x"), {0x00}, make([]byte, 512)}
	for _, blob := range blobs {
		got, err := DetectFileType(blob)
		if err != nil {
			t.Fatalf("DetectFileType() error = %v", err)
		}
		if got == "" {
			t.Errorf("DetectFileType(%q...) returned an empty type", blob[:min(len(blob), 8)])
		}
	}
}

func TestGuard_Detect_ClassifierFailure(t *testing.T) {
	g := NewGuard(WithClassifier(failingClassifier{}))

	_, err := g.Detect(pngHeader)
	if !IsErrorOfType(err, ErrorTypeClassifier) {
		t.Fatalf("Detect() error = %v, want classifier error", err)
	}
	if !strings.Contains(GetErrorMessage(err), "signature database corrupted") {
		t.Errorf("Detect() error lost the cause: %v", err)
	}
}

func TestGuard_Detect_BlankClassifierOutput(t *testing.T) {
	g := NewGuard(WithClassifier(blankClassifier{}))

	_, err := g.Detect(pngHeader)
	if !IsErrorOfType(err, ErrorTypeClassifier) {
		t.Errorf("Detect() error = %v, want classifier error", err)
	}
}

func TestValidateUpload_DefaultAllowlist(t *testing.T) {
	decision, err := ValidateUpload(pngHeader, nil, "")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}

	if !decision.Allowed {
		t.Error("Expected PNG to be allowed by the default allow-list")
	}
	if !strings.Contains(decision.DetectedType, "png") {
		t.Errorf("DetectedType = %s, want a png type", decision.DetectedType)
	}
	if !strings.Contains(decision.Reason, "permitted") {
		t.Errorf("Reason = %q, want it to contain 'permitted'", decision.Reason)
	}
	if !strings.Contains(decision.Reason, DefaultContext) {
		t.Errorf("Reason = %q, want it to contain the default context", decision.Reason)
	}
}

func TestValidateUpload_RejectsSpoofedExecutable(t *testing.T) {
	// The critical case: an executable renamed to .png must be caught
	// from its content alone.
	decision, err := ValidateUpload(exeHeader, []string{"image/png", "image/jpeg"}, "profile-photo")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}

	if decision.Allowed {
		t.Error("Expected executable content to be blocked")
	}
	if !strings.Contains(decision.Reason, "blocked") {
		t.Errorf("Reason = %q, want it to contain 'blocked'", decision.Reason)
	}
	if !strings.Contains(decision.Reason, "profile-photo") {
		t.Errorf("Reason = %q, want it to contain the context label", decision.Reason)
	}
}

func TestValidateUpload_CustomAllowlist(t *testing.T) {
	// PNG content when only PDF is allowed.
	decision, err := ValidateUpload(pngHeader, []string{"application/pdf"}, "document-upload")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}

	if decision.Allowed {
		t.Error("Expected PNG to be blocked when only PDF is allowed")
	}
	if got := decision.ExpectedTypes; len(got) != 1 || got[0] != "application/pdf" {
		t.Errorf("ExpectedTypes = %v, want [application/pdf]", got)
	}
}

func TestValidateUpload_EmptyBlob(t *testing.T) {
	allowlists := [][]string{nil, {"image/png"}, {}}
	for _, allow := range allowlists {
		_, err := ValidateUpload(nil, allow, "upload")
		if !IsErrorOfType(err, ErrorTypeInput) {
			t.Errorf("ValidateUpload(empty, %v) error = %v, want input error", allow, err)
		}
	}
}

func TestValidateUpload_EmptyAllowlist(t *testing.T) {
	_, err := ValidateUpload(pngHeader, []string{}, "upload")
	if !IsErrorOfType(err, ErrorTypeConfig) {
		t.Errorf("ValidateUpload() error = %v, want config error", err)
	}

	// Entries that normalize away leave nothing to permit either.
	_, err = ValidateUpload(pngHeader, []string{"  ", ""}, "upload")
	if !IsErrorOfType(err, ErrorTypeConfig) {
		t.Errorf("ValidateUpload(blank entries) error = %v, want config error", err)
	}
}

func TestValidateUpload_ContextInReason(t *testing.T) {
	decision, err := ValidateUpload(exeHeader, nil, "test-context")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}
	if !strings.Contains(decision.Reason, "test-context") {
		t.Errorf("Reason = %q, want it to contain 'test-context'", decision.Reason)
	}
}

func TestValidateUpload_WildcardAllowlist(t *testing.T) {
	decision, err := ValidateUpload(pngHeader, []string{"image/*"}, "gallery")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}
	if !decision.Allowed {
		t.Error("Expected image/* to permit PNG")
	}

	decision, err = ValidateUpload(pdfHeader, []string{"image/*"}, "gallery")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}
	if decision.Allowed {
		t.Error("Expected image/* to block PDF")
	}
}

func TestValidateUpload_Idempotent(t *testing.T) {
	first, err := ValidateUpload(pngHeader, []string{"image/png", "image/jpeg"}, "repeat")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := ValidateUpload(pngHeader, []string{"image/jpeg", "image/png"}, "repeat")
		if err != nil {
			t.Fatalf("ValidateUpload() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Decision changed between identical calls: %+v vs %+v", first, again)
		}
	}
}

func TestValidateUpload_ConcurrentUse(t *testing.T) {
	g := NewGuard()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				decision, err := g.Validate(pngHeader, nil, "concurrent")
				if err != nil || !decision.Allowed {
					t.Errorf("Validate() = %+v, %v", decision, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestGuard_WithDefaultAllowlist(t *testing.T) {
	g := NewGuard(WithDefaultAllowlist("application/pdf"))

	decision, err := g.Validate(pdfHeader, nil, "contract")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !decision.Allowed {
		t.Error("Expected PDF to be allowed by the custom default")
	}

	decision, err = g.Validate(pngHeader, nil, "contract")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if decision.Allowed {
		t.Error("Expected PNG to be blocked by the custom default")
	}
}

func TestValidateUpload_MutatingResultDoesNotLeak(t *testing.T) {
	decision, err := ValidateUpload(pngHeader, nil, "upload")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}
	for i := range decision.ExpectedTypes {
		decision.ExpectedTypes[i] = "mutated/type"
	}

	again, err := ValidateUpload(pngHeader, nil, "upload")
	if err != nil {
		t.Fatalf("ValidateUpload() error = %v", err)
	}
	for _, typ := range again.ExpectedTypes {
		if typ == "mutated/type" {
			t.Fatal("Mutation of a returned Decision leaked into a later call")
		}
	}
}
