package tfidf

// englishStopwords returns the set of common English words excluded from the
// vocabulary.
func englishStopwords() map[string]struct{} {
	words := []string{
		"about", "above", "after", "again", "all", "also", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "being",
		"below", "between", "both", "but", "by", "can", "could", "did",
		"do", "does", "doing", "down", "during", "each", "else", "few",
		"for", "from", "further", "had", "has", "have", "having", "he",
		"her", "here", "hers", "him", "his", "how", "if", "in", "into",
		"is", "it", "its", "itself", "just", "may", "me", "might",
		"more", "most", "must", "my", "no", "nor", "not", "now", "of",
		"off", "on", "once", "only", "or", "other", "our", "ours",
		"out", "over", "own", "same", "shall", "she", "should", "so",
		"some", "such", "than", "that", "the", "their", "theirs",
		"them", "then", "there", "these", "they", "this", "those",
		"through", "to", "too", "under", "until", "up", "very", "was",
		"we", "were", "what", "when", "where", "which", "while", "who",
		"whom", "why", "will", "with", "would", "you", "your", "yours",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
