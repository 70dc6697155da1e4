package resume

import (
	"archive/zip"
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mb = 1024 * 1024

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(0)

	tests := []struct {
		name    string
		upload  Upload
		want    string
		wantErr error
	}{
		{"empty exe rejected for type", Upload{Filename: "setup.exe", DeclaredType: "application/x-msdownload"}, "", ErrUnsupportedType},
		{"11MB pdf rejected for size", Upload{Filename: "cv.pdf", DeclaredType: TypePDF, Size: 11 * mb}, "", ErrFileTooLarge},
		{"5MB txt accepted", Upload{Filename: "cv.txt", DeclaredType: TypeTXT, Size: 5 * mb}, TypeTXT, nil},
		{"exactly 10MB accepted", Upload{Filename: "cv.docx", DeclaredType: TypeDOCX, Size: 10 * mb}, TypeDOCX, nil},
		{"one byte over rejected", Upload{Filename: "cv.doc", DeclaredType: TypeDOC, Size: 10*mb + 1}, "", ErrFileTooLarge},
		{"parameters ignored", Upload{Filename: "cv.txt", DeclaredType: "Text/Plain; charset=utf-8", Size: 10}, TypeTXT, nil},
		{"type checked before size", Upload{Filename: "big.png", DeclaredType: "image/png", Size: 50 * mb}, "", ErrUnsupportedType},
		{"sniffed pdf", Upload{Filename: "cv.pdf", Head: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")}, TypePDF, nil},
		{"sniffed text behind octet-stream", Upload{Filename: "CV.TXT", DeclaredType: "application/octet-stream", Head: []byte("Jane Doe\nGo developer\n")}, TypeTXT, nil},
		{"sniffed binary rejected", Upload{Filename: "cv.pdf", DeclaredType: "application/octet-stream", Head: []byte{0x4d, 0x5a, 0x90, 0x00, 0x03}}, "", ErrUnsupportedType},
		{"empty exe without declared type rejected", Upload{Filename: "setup.exe"}, "", ErrUnsupportedType},
		{"empty exe behind octet-stream rejected", Upload{Filename: "setup.exe", DeclaredType: "application/octet-stream"}, "", ErrUnsupportedType},
		{"empty txt behind octet-stream rejected", Upload{Filename: "cv.txt", DeclaredType: "application/octet-stream"}, "", ErrUnsupportedType},
		{"sniffed text needs a document extension", Upload{Filename: "notes.sh", Head: []byte("echo hello\n")}, "", ErrUnsupportedType},
		{"sniffed text without extension rejected", Upload{Filename: "cv", Head: []byte("Jane Doe\n")}, "", ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.upload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidator_Messages(t *testing.T) {
	v := NewValidator(DefaultMaxBytes)

	_, err := v.Validate(Upload{DeclaredType: "application/zip"})
	assert.EqualError(t, err, "Please upload a PDF, DOC, DOCX, or TXT file")

	_, err = v.Validate(Upload{DeclaredType: TypePDF, Size: 11 * mb})
	assert.EqualError(t, err, "File size must be less than 10MB")

	_, err = NewValidator(2 * mb).Validate(Upload{DeclaredType: TypePDF, Size: 3 * mb})
	assert.EqualError(t, err, "File size must be less than 2MB")
}

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_Docx(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			`<w:p><w:r><w:t>Go developer</w:t></w:r><w:r><w:tab/><w:t>Kubernetes</w:t></w:r></w:p>` +
			`<w:p><w:r><w:t xml:space="preserve">Remote</w:t></w:r></w:p>` +
			`</w:body></w:document>`,
	})

	text, err := ExtractText("cv.docx", TypeDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Go developer\tKubernetes\nRemote\n", text)
}

func TestExtractText_Errors(t *testing.T) {
	_, err := ExtractText("cv.docx", "", buildDocx(t, map[string]string{"other.xml": "<x/>"}))
	assert.ErrorContains(t, err, "word/document.xml missing")

	_, err = ExtractText("cv.docx", "", []byte("not a zip"))
	assert.Error(t, err)

	_, err = ExtractText("cv.pdf", TypePDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ExtractText("cv.txt", "", []byte{0xff, 0xfe, 0xfd})
	assert.Error(t, err)

	_, err = ExtractText("cv.doc", TypeDOC, []byte("legacy"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractText_PlainByExtension(t *testing.T) {
	text, err := ExtractText("CV.TXT", "", []byte("Senior engineer"))
	require.NoError(t, err)
	assert.Equal(t, "Senior engineer", text)
}

func TestParse(t *testing.T) {
	text := "Jane Doe\njane.doe@example.com | (555) 123-4567\n" +
		"Senior Software Engineer with Go, Python and PostgreSQL.\n" +
		"Bachelor of Computer Science, State University.\n" +
		"Agile, scrum; AWS Certified; Docker/Kubernetes CI/CD.\n" +
		"JavaScript developer"

	p := Parse(text)

	assert.Equal(t, []string{"jane.doe@example.com"}, p.Contact.Emails)
	assert.Equal(t, []string{"(555) 123-4567"}, p.Contact.Phones)
	assert.Equal(t, []string{"python", "javascript", "go"}, p.Skills["programming_languages"])
	assert.Equal(t, []string{"postgresql"}, p.Skills["databases"])
	assert.Equal(t, []string{"aws", "docker", "kubernetes", "ci/cd"}, p.Skills["cloud_devops"])
	assert.Equal(t, []string{"aws certified"}, p.Skills["certifications"])
	assert.Equal(t, []string{"agile", "scrum"}, p.Skills["soft_skills"])
	assert.Empty(t, p.Skills["emerging_tech"], "short tokens like ar/vr need whole-word matches")
	assert.Len(t, p.Skills, 11)
	assert.Equal(t, 11, p.Skills.Total())
	assert.Equal(t, []string{"bachelor", "university", "computer science"}, p.Education)
	assert.Equal(t, []string{"senior"}, p.Experience.Levels)
	assert.Equal(t, []string{"software engineer", "developer"}, p.Experience.Roles)
	assert.Equal(t, len([]rune(text)), p.TextLength)
}

func TestParse_Empty(t *testing.T) {
	p := Parse("")
	assert.NotNil(t, p.Contact.Emails)
	assert.NotNil(t, p.Contact.Phones)
	assert.Zero(t, p.Skills.Total())
	assert.Empty(t, p.Education)
}

func TestAnalyzer_YearsRange(t *testing.T) {
	a := NewAnalyzer(rand.NewPCG(7, 7))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		res := a.Analyze("cv.pdf")
		require.GreaterOrEqual(t, res.Experience.TotalYears, 2)
		require.LessOrEqual(t, res.Experience.TotalYears, 9)
		seen[res.Experience.TotalYears] = true
	}
	assert.True(t, seen[2] && seen[9], "both ends of the range are produced")

	res := a.Analyze("resume.docx")
	assert.Equal(t, "resume.docx", res.FileName)
	assert.Len(t, res.DetectedSkills.Technical, 10)
	assert.Equal(t, "Senior", res.Experience.Level)
}
