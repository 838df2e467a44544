package goCred

type SecurityReport struct {
	HashAlgorithm         string
	Argon2                PasswordConfigReport
	PepperConfigured      bool
	PepperMigrationActive bool
	UpgradeOnLogin        bool
	MaxPasswordBytes      int
	RegistrationEnabled   bool
	AuditEnabled          bool
	MetricsEnabled        bool
}

type PasswordConfigReport struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	return SecurityReport{
		HashAlgorithm: "argon2id",
		Argon2: PasswordConfigReport{
			Memory:      e.config.Password.Memory,
			Iterations:  e.config.Password.Iterations,
			Parallelism: e.config.Password.Parallelism,
			SaltLength:  e.config.Password.SaltLength,
			KeyLength:   e.config.Password.KeyLength,
		},
		PepperConfigured:      len(e.config.Password.Pepper) > 0,
		PepperMigrationActive: len(e.config.Password.Pepper) > 0 && e.config.Password.AcceptUnpeppered,
		UpgradeOnLogin:        e.config.Password.UpgradeOnLogin,
		MaxPasswordBytes:      e.config.Password.MaxPasswordBytes,
		RegistrationEnabled:   e.config.Registration.Enabled,
		AuditEnabled:          e.config.Audit.Enabled,
		MetricsEnabled:        e.config.Metrics.Enabled,
	}
}
