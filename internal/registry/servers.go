package registry

import "github.com/jaxxstorm/whoistrace/internal/model"

// Verisign registries reject bare queries; they need the "domain" keyword
// prefix. Most ccTLD registries are the opposite and want the bare name.
var defaultServers = map[string]model.ServerConfig{
	"com": {Host: "whois.verisign-grs.com", QueryTemplate: "domain {domain}"},
	"net": {Host: "whois.verisign-grs.com", QueryTemplate: "domain {domain}"},
	"cc":  {Host: "ccwhois.verisign-grs.com", QueryTemplate: "domain {domain}"},
	"tv":  {Host: "tvwhois.verisign-grs.com", QueryTemplate: "domain {domain}"},

	"org":  {Host: "whois.pir.org", QueryTemplate: "{domain}"},
	"edu":  {Host: "whois.educause.edu", QueryTemplate: "{domain}"},
	"info": {Host: "whois.nic.info", QueryTemplate: "{domain}"},
	"biz":  {Host: "whois.nic.biz", QueryTemplate: "{domain}"},
	"io":   {Host: "whois.nic.io", QueryTemplate: "{domain}"},
	"co":   {Host: "whois.nic.co", QueryTemplate: "{domain}"},
	"me":   {Host: "whois.nic.me", QueryTemplate: "{domain}"},
	"ai":   {Host: "whois.nic.ai", QueryTemplate: "{domain}"},
	"sh":   {Host: "whois.nic.sh", QueryTemplate: "{domain}"},
	"dev":  {Host: "whois.nic.google", QueryTemplate: "{domain}"},
	"app":  {Host: "whois.nic.google", QueryTemplate: "{domain}"},
	"xyz":  {Host: "whois.nic.xyz", QueryTemplate: "{domain}"},
	"in":   {Host: "whois.registry.in", QueryTemplate: "{domain}"},

	"uk":     {Host: "whois.nic.uk", QueryTemplate: "{domain}"},
	"co.uk":  {Host: "whois.nic.uk", QueryTemplate: "{domain}"},
	"org.uk": {Host: "whois.nic.uk", QueryTemplate: "{domain}"},
	"me.uk":  {Host: "whois.nic.uk", QueryTemplate: "{domain}"},

	"au":     {Host: "whois.auda.org.au", QueryTemplate: "{domain}"},
	"com.au": {Host: "whois.auda.org.au", QueryTemplate: "{domain}"},
	"net.au": {Host: "whois.auda.org.au", QueryTemplate: "{domain}"},

	"nz":     {Host: "whois.srs.net.nz", QueryTemplate: "{domain}"},
	"co.nz":  {Host: "whois.srs.net.nz", QueryTemplate: "{domain}"},
	"net.nz": {Host: "whois.srs.net.nz", QueryTemplate: "{domain}"},

	"br":     {Host: "whois.registro.br", QueryTemplate: "{domain}"},
	"com.br": {Host: "whois.registro.br", QueryTemplate: "{domain}"},

	"za":    {Host: "whois.registry.net.za", QueryTemplate: "{domain}"},
	"co.za": {Host: "whois.registry.net.za", QueryTemplate: "{domain}"},

	// denic needs its flag syntax or it answers with an error notice
	"de": {Host: "whois.denic.de", QueryTemplate: "-T dn {domain}"},
	// jprs serves japanese by default; /e switches to english
	"jp":    {Host: "whois.jprs.jp", QueryTemplate: "{domain}/e"},
	"co.jp": {Host: "whois.jprs.jp", QueryTemplate: "{domain}/e"},

	"fr": {Host: "whois.nic.fr", QueryTemplate: "{domain}"},
	"nl": {Host: "whois.domain-registry.nl", QueryTemplate: "{domain}"},
	"eu": {Host: "whois.eu", QueryTemplate: "{domain}"},
	"be": {Host: "whois.dns.be", QueryTemplate: "{domain}"},
	"ch": {Host: "whois.nic.ch", QueryTemplate: "{domain}"},
	"at": {Host: "whois.nic.at", QueryTemplate: "{domain}"},
	"it": {Host: "whois.nic.it", QueryTemplate: "{domain}"},
	"es": {Host: "whois.nic.es", QueryTemplate: "{domain}"},
	"pt": {Host: "whois.dns.pt", QueryTemplate: "{domain}"},
	"pl": {Host: "whois.dns.pl", QueryTemplate: "{domain}"},
	"se": {Host: "whois.iis.se", QueryTemplate: "{domain}"},
	"no": {Host: "whois.norid.no", QueryTemplate: "{domain}"},
	"fi": {Host: "whois.fi", QueryTemplate: "{domain}"},
	"dk": {Host: "whois.punktum.dk", QueryTemplate: "{domain}"},

	"us": {Host: "whois.nic.us", QueryTemplate: "{domain}"},
	"ca": {Host: "whois.cira.ca", QueryTemplate: "{domain}"},
	"mx": {Host: "whois.mx", QueryTemplate: "{domain}"},

	"cn": {Host: "whois.cnnic.cn", QueryTemplate: "{domain}"},
	"kr": {Host: "whois.kr", QueryTemplate: "{domain}"},
	"ru": {Host: "whois.tcinet.ru", QueryTemplate: "{domain}", TimeoutMs: 10000},
	"su": {Host: "whois.tcinet.ru", QueryTemplate: "{domain}", TimeoutMs: 10000},
}
