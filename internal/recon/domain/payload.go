package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ScanPayload is the decoded result of one engine call. The concrete type
// depends on the category; RawPayload covers anything unrecognised.
type ScanPayload interface {
	Category() ScanCategory

	// Summary is a one-line description for logs and listings.
	Summary() string
}

// DecodePayload decodes raw engine output for category c. It never fails:
// output that does not match the category's shape comes back as RawPayload.
func DecodePayload(c ScanCategory, raw json.RawMessage) ScanPayload {
	var p ScanPayload
	switch c {
	case CategorySocial:
		p = &SocialPayload{}
	case CategoryShodan:
		p = &ShodanPayload{}
	case CategoryPasswords:
		p = &PasswordsPayload{}
	case CategoryCrawl:
		p = &CrawlPayload{}
	case CategoryWeb:
		p = &WebPayload{}
	default:
		return RawPayload{Cat: c, Data: raw}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(p); err != nil {
		return RawPayload{Cat: c, Data: raw}
	}
	return p
}

// RawPayload keeps engine output that could not be decoded as its category.
type RawPayload struct {
	Cat  ScanCategory
	Data json.RawMessage
}

func (p RawPayload) Category() ScanCategory { return p.Cat }

func (p RawPayload) Summary() string { return fmt.Sprintf("%d bytes", len(p.Data)) }

func (p RawPayload) MarshalJSON() ([]byte, error) {
	if len(p.Data) == 0 {
		return []byte("null"), nil
	}
	return p.Data, nil
}

// ============================================================================
// social
// ============================================================================

type SocialPayload struct {
	OrganizationInfo OrganizationInfo `json:"organization_info"`
	Employees        []Employee       `json:"employees"`
	TechStack        []string         `json:"tech_stack"`
	Total            int              `json:"total"`
}

type OrganizationInfo struct {
	Domain      string `json:"domain"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	Size        string `json:"size"`
	Twitter     string `json:"twitter"`
	Facebook    string `json:"facebook"`
	LinkedIn    string `json:"linkedin"`
	Instagram   string `json:"instagram"`
	Country     string `json:"country"`
	State       string `json:"state"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Street      string `json:"street"`
}

type Employee struct {
	Name        string         `json:"name"`
	Emails      []string       `json:"emails"`
	Position    string         `json:"position"`
	Seniority   string         `json:"seniority"`
	Department  string         `json:"department"`
	PhoneNumber string         `json:"phone_number"`
	Socials     EmployeeSocial `json:"socials"`
}

type EmployeeSocial struct {
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

func (p *SocialPayload) Category() ScanCategory { return CategorySocial }

func (p *SocialPayload) Summary() string {
	name := p.OrganizationInfo.Name
	if name == "" {
		name = p.OrganizationInfo.Domain
	}
	return fmt.Sprintf("%s: %d employees, %d technologies", name, len(p.Employees), len(p.TechStack))
}

// ============================================================================
// shodan
// ============================================================================

type ShodanPayload struct {
	IP              string          `json:"ip"`
	Hostnames       []string        `json:"hostnames"`
	Ports           []int           `json:"ports"`
	City            string          `json:"city"`
	Country         string          `json:"country"`
	LatLon          []float64       `json:"latlon"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`

	// Message is set instead of the host fields when Shodan has no data.
	Message string `json:"message,omitempty"`
}

type Vulnerability struct {
	CVEID         string  `json:"cve_id"`
	CVSS          float64 `json:"cvss"`
	PublishedTime string  `json:"published_time"`
	Summary       string  `json:"summary"`
}

func (p *ShodanPayload) Category() ScanCategory { return CategoryShodan }

func (p *ShodanPayload) Summary() string {
	if p.IP == "" && p.Message != "" {
		return p.Message
	}
	return fmt.Sprintf("%s: %d open ports, %d vulnerabilities", p.IP, len(p.Ports), len(p.Vulnerabilities))
}

// ============================================================================
// passwords
// ============================================================================

type PasswordsPayload struct {
	Balance int             `json:"balance"`
	Entries []PasswordEntry `json:"entries"`
}

type PasswordEntry struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	IPAddress      string `json:"ip_address"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	HashedPassword string `json:"hashed_password"`
	Name           string `json:"name"`
	VIN            string `json:"vin"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	DatabaseName   string `json:"database_name"`
}

func (p *PasswordsPayload) Category() ScanCategory { return CategoryPasswords }

func (p *PasswordsPayload) Summary() string {
	return fmt.Sprintf("%d leaked entries", len(p.Entries))
}

// ============================================================================
// crawl
// ============================================================================

type CrawlPayload struct {
	Endpoints []string         `json:"endpoints"`
	RobotsTxt []RobotsTxtEntry `json:"robots_txt"`
	ExtraInfo json.RawMessage  `json:"extra_info,omitempty"`
}

type RobotsTxtEntry struct {
	Allow    []string `json:"Allow"`
	Disallow []string `json:"Disallow"`
}

func (p *CrawlPayload) Category() ScanCategory { return CategoryCrawl }

func (p *CrawlPayload) Summary() string {
	var disallowed int
	for _, r := range p.RobotsTxt {
		disallowed += len(r.Disallow)
	}
	return fmt.Sprintf("%d endpoints, %d disallowed paths", len(p.Endpoints), disallowed)
}

// ============================================================================
// web (OWASP ZAP JSON report)
// ============================================================================

type WebPayload struct {
	Version   string    `json:"@version"`
	Generated string    `json:"@generated"`
	Sites     []WebSite `json:"site"`
}

type WebSite struct {
	Name   string     `json:"@name"`
	Host   string     `json:"@host"`
	Port   string     `json:"@port"`
	SSL    string     `json:"@ssl"`
	Alerts []WebAlert `json:"alerts"`
}

type WebAlert struct {
	PluginID   string            `json:"pluginid"`
	Alert      string            `json:"alert"`
	Name       string            `json:"name"`
	RiskCode   string            `json:"riskcode"`
	Confidence string            `json:"confidence"`
	RiskDesc   string            `json:"riskdesc"`
	Desc       string            `json:"desc"`
	Count      string            `json:"count"`
	Solution   string            `json:"solution"`
	Reference  string            `json:"reference"`
	CWEID      string            `json:"cweid"`
	WASCID     string            `json:"wascid"`
	Instances  []json.RawMessage `json:"instances"`
}

func (p *WebPayload) Category() ScanCategory { return CategoryWeb }

func (p *WebPayload) Summary() string {
	var alerts, high int
	for _, s := range p.Sites {
		alerts += len(s.Alerts)
		for _, a := range s.Alerts {
			if a.RiskCode == "3" {
				high++
			}
		}
	}
	return fmt.Sprintf("%d sites, %d alerts (%d high)", len(p.Sites), alerts, high)
}
