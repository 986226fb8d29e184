package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants each binary relies on at startup. Only cross-cutting rules live
// here; the server and client mains check their own required groups via
// [StructuredConfig.ValidateServer] and [StructuredConfig.ValidateClient]
// because a config valid for one binary is incomplete for the other.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AccessTokenDuration < 0 || cfg.App.RefreshTokenDuration < 0 {
		return ErrInvalidAppConfigs
	}
	return nil
}

// ValidateServer checks the groups the server binary cannot run without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.S3.Bucket == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	return nil
}

// ValidateClient checks the groups the desktop client cannot run without.
// The server base URL may be empty: a client without one runs in
// local-only mode.
func (cfg *StructuredConfig) ValidateClient() error {
	if cfg.Client.LocalDBPath == "" {
		return ErrInvalidClientConfigs
	}
	return nil
}
