package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "id",
			identifier:  "42",
			paramsKey:   nil,
			expectedKey: "wikiquiz:quiz:id:42",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "id",
			identifier:  "42",
			paramsKey:   []string{},
			expectedKey: "wikiquiz:quiz:id:42",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quiz",
			objectType:  "list",
			identifier:  "recent",
			paramsKey:   []string{"page1", "size20"},
			expectedKey: "wikiquiz:quiz:list:recent:page1_size20",
		},
		{
			name:        "identifier containing separators",
			serviceName: "quiz",
			objectType:  "url",
			identifier:  "https://en.wikipedia.org/wiki/Go",
			paramsKey:   nil,
			expectedKey: "wikiquiz:quiz:url:https://en.wikipedia.org/wiki/Go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestQuizKeys(t *testing.T) {
	if got := QuizByURLKey("https://en.wikipedia.org/wiki/Alan_Turing"); got != "wikiquiz:quiz:url:https://en.wikipedia.org/wiki/Alan_Turing" {
		t.Errorf("QuizByURLKey() = %v", got)
	}
	if got := QuizByIDKey(7); got != "wikiquiz:quiz:id:7" {
		t.Errorf("QuizByIDKey() = %v", got)
	}
}
