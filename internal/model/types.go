package model

import "time"

type ServerConfig struct {
	Host          string `json:"host" yaml:"host"`
	QueryTemplate string `json:"queryTemplate" yaml:"queryTemplate"`
	TimeoutMs     int    `json:"timeoutMs" yaml:"timeoutMs"`
	MaxHops       int    `json:"maxHops" yaml:"maxHops"`
}

func (c ServerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type ServerEntry struct {
	TLD    string       `json:"tld"`
	Config ServerConfig `json:"config"`
}

type ParseResult struct {
	Success bool      `json:"success"`
	Fields  *FieldMap `json:"fields"`
	RawText string    `json:"rawText"`
	Errors  []string  `json:"errors,omitempty"`
}

type TierResult struct {
	ServerHost      string    `json:"serverHost"`
	RawResponseText string    `json:"rawResponseText"`
	ParsedFields    *FieldMap `json:"parsedFields"`
	Referral        string    `json:"referral,omitempty"`
}

func (r *TierResult) FieldCount() int {
	if r == nil {
		return 0
	}
	return r.ParsedFields.Len()
}

type PerTier struct {
	IANA      *TierResult `json:"iana,omitempty"`
	Registry  *TierResult `json:"registry,omitempty"`
	Registrar *TierResult `json:"registrar,omitempty"`
}

type Metadata struct {
	ServersQueried []string `json:"serversQueried"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	TotalFields    int      `json:"totalFields"`
	ElapsedMs      int64    `json:"elapsedMs"`
}

type Diagnosis struct {
	Classification string   `json:"classification"`
	Summary        string   `json:"summary"`
	EvidenceTiers  []string `json:"evidenceTiers,omitempty"`
	Hints          []string `json:"hints,omitempty"`
}

type RegistrationSummary struct {
	Registered      bool     `json:"registered"`
	Registrar       string   `json:"registrar,omitempty"`
	RegistrarIANAID string   `json:"registrarIanaId,omitempty"`
	CreatedDate     string   `json:"createdDate,omitempty"`
	UpdatedDate     string   `json:"updatedDate,omitempty"`
	ExpiryDate      string   `json:"expiryDate,omitempty"`
	AgeDays         int      `json:"ageDays,omitempty"`
	Statuses        []string `json:"statuses,omitempty"`
	NameServers     []string `json:"nameServers,omitempty"`
	DNSSEC          string   `json:"dnssec,omitempty"`
}

type NSCheck struct {
	Resolver       string   `json:"resolver"`
	Declared       []string `json:"declared"`
	Served         []string `json:"served"`
	Matched        []string `json:"matched,omitempty"`
	MissingFromDNS []string `json:"missingFromDns,omitempty"`
	ExtraInDNS     []string `json:"extraInDns,omitempty"`
	Agreement      bool     `json:"agreement"`
}

type LookupResult struct {
	Domain    string               `json:"domain"`
	TLD       string               `json:"tld"`
	PerTier   PerTier              `json:"perTier"`
	Metadata  Metadata             `json:"metadata"`
	Diagnosis Diagnosis            `json:"diagnosis"`
	Summary   *RegistrationSummary `json:"summary,omitempty"`
	NSCheck   *NSCheck             `json:"nsCheck,omitempty"`
}
