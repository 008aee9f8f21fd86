package models

// DictionarySearchResult — результат поиска в словаре.
type DictionarySearchResult struct {
	Word         string   `json:"word"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Meanings     []string `json:"meanings"`
	ImageURL     string   `json:"imageUrl"`
}
