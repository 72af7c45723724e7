package scoring_test

import (
	"testing"

	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
	"github.com/stretchr/testify/require"
)

func loadSet(t *testing.T) *rules.Set {
	t.Helper()
	set, err := rules.Default()
	require.NoError(t, err)
	return set
}

func corpusOf(files ...domain.CorpusFile) *domain.Corpus {
	return &domain.Corpus{Files: files}
}

func text(path, content string) domain.CorpusFile {
	return domain.CorpusFile{Path: path, Content: content, Size: int64(len(content))}
}

// pythonAPI is a small FastAPI service with JWT auth, a Dockerfile and one test.
func pythonAPI() *domain.Corpus {
	return corpusOf(
		text("requirements.txt", "fastapi==0.110.0\npyjwt==2.8.0\n"),
		text("main.py", "from fastapi import FastAPI\nimport jwt\n\napp = FastAPI()\n"),
		text("Dockerfile", "FROM python:3.12-slim\nCOPY . /app\n"),
		text("tests/test_main.py", "def test_root():\n    assert True\n"),
	)
}
