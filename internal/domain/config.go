package domain

// KeyPrefix namespaces all storage keys owned by this service.
const KeyPrefix = "studysearch:"

// DefaultVectorDimensions is the embedding dimensionality used when the
// vectorizer config does not specify one (text-embedding-3-small).
const DefaultVectorDimensions = 1536
