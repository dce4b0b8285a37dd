package model

// ProviderCacheKV stores raw provider payloads keyed by query, so repeated
// admin searches within the TTL do not re-bill the provider.
type ProviderCacheKV struct {
	Key       string `gorm:"column:key;type:text;primaryKey"`
	Value     string `gorm:"column:value;type:text;not null"`
	ExpiresAt string `gorm:"column:expires_at;type:text;not null"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (ProviderCacheKV) TableName() string {
	return "provider_cache_kv"
}
