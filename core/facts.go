package core

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/awrlens/schema"
)

// canonicalCharset is the character set that needs no conversion.
const canonicalCharset = "AL32UTF8"

// CharsetClass groups character sets by conversion effort.
type CharsetClass string

// Character set classes.
const (
	CharsetNone         CharsetClass = "none"
	CharsetCanonical    CharsetClass = "canonical"
	CharsetSingleByte   CharsetClass = "single_byte"
	CharsetMultiByte    CharsetClass = "multi_byte"
	CharsetLegacy       CharsetClass = "legacy"
	CharsetUnrecognized CharsetClass = "unrecognized"
)

var singleByteCharsets = map[string]struct{}{
	"WE8ISO8859P1": {}, "WE8ISO8859P15": {}, "WE8MSWIN1252": {}, "EE8ISO8859P2": {},
	"EE8MSWIN1250": {}, "CL8MSWIN1251": {}, "CL8ISO8859P5": {}, "EL8ISO8859P7": {},
	"IW8ISO8859P8": {}, "AR8ISO8859P6": {}, "TR8MSWIN1254": {}, "BLT8MSWIN1257": {},
	"NEE8ISO8859P4": {}, "TH8TISASCII": {}, "VN8MSWIN1258": {},
}

var multiByteCharsets = map[string]struct{}{
	"ZHS16GBK": {}, "ZHS32GB18030": {}, "ZHT16BIG5": {}, "ZHT16MSWIN950": {}, "ZHT16HKSCS": {},
	"JA16SJIS": {}, "JA16SJISTILDE": {}, "JA16EUC": {}, "JA16EUCTILDE": {},
	"KO16MSWIN949": {}, "KO16KSC5601": {}, "UTF8": {}, "AL16UTF16": {}, "UTFE": {},
}

var legacyCharsets = map[string]struct{}{
	"US7ASCII": {}, "WE8DEC": {}, "US8PC437": {}, "WE8PC850": {}, "WE8PC858": {},
	"D7DEC": {}, "F7DEC": {}, "S7DEC": {}, "E7DEC": {}, "SF7ASCII": {},
	"WE8EBCDIC37": {}, "WE8EBCDIC500": {}, "WE8EBCDIC1047": {}, "US8ICL": {},
}

// editionPatterns are checked in order; longer names before their prefixes and
// full names before abbreviations.
var editionPatterns = []struct {
	edition schema.Edition
	re      *regexp.Regexp
}{
	{schema.EnterpriseEdition, regexp.MustCompile(`(?i)enterprise\s+edition`)},
	{schema.StandardEdition2, regexp.MustCompile(`(?i)standard\s+edition\s+2`)},
	{schema.StandardEditionOne, regexp.MustCompile(`(?i)standard\s+edition\s+one`)},
	{schema.StandardEdition, regexp.MustCompile(`(?i)standard\s+edition`)},
	{schema.ExpressEdition, regexp.MustCompile(`(?i)express\s+edition`)},
	{schema.PersonalEdition, regexp.MustCompile(`(?i)personal\s+edition`)},
	{schema.StandardEdition2, regexp.MustCompile(`(?i)\bSE2\b`)},
	{schema.StandardEditionOne, regexp.MustCompile(`(?i)\bSE1\b`)},
	{schema.EnterpriseEdition, regexp.MustCompile(`(?i)\bEE\b`)},
	{schema.ExpressEdition, regexp.MustCompile(`(?i)\bXE\b`)},
	{schema.PersonalEdition, regexp.MustCompile(`(?i)\bPE\b`)},
	{schema.StandardEdition, regexp.MustCompile(`(?i)\bSE\b`)},
}

// releaseLadder lists major releases in upgrade order.
var releaseLadder = []int{9, 10, 11, 12, 18, 19, 21, 23}

// latestSupportedRelease is the newest major release the same-engine target runs.
const latestSupportedRelease = 19

var bannerRelease = regexp.MustCompile(`(?i)(?:release\s+|database\s+)(\d{1,2})(?:\.|[a-z]\b)`)

// Facts are values derived once from a report.
type Facts struct {
	Edition            schema.Edition `json:"edition" yaml:"edition"`
	MajorVersion       int            `json:"major_version" yaml:"major_version"` // 0 when unknown
	RAC                bool           `json:"rac" yaml:"rac"`
	Charset            string         `json:"charset" yaml:"charset"`
	CharsetClass       CharsetClass   `json:"charset_class" yaml:"charset_class"`
	ConversionRequired bool           `json:"conversion_required" yaml:"conversion_required"`
}

// DeriveFacts computes edition, version, cluster and charset facts.
func DeriveFacts(model *schema.ReportModel) Facts {
	meta := model.Metadata
	charset := NormalizeCharset(meta.CharacterSet)
	class := ClassifyCharset(charset)
	return Facts{
		Edition:            DetectEdition(meta.Banner, meta.Version),
		MajorVersion:       MajorVersion(meta.Version, meta.Banner),
		RAC:                meta.Instances > 1,
		Charset:            charset,
		CharsetClass:       class,
		ConversionRequired: class != CharsetNone && class != CharsetCanonical,
	}
}

// DetectEdition scans the given texts for edition keywords, most specific first.
func DetectEdition(texts ...string) schema.Edition {
	joined := strings.Join(texts, " ")
	for _, p := range editionPatterns {
		if p.re.MatchString(joined) {
			return p.edition
		}
	}
	return schema.UnknownEdition
}

// MajorVersion reads the leading release number of a dotted version string,
// falling back to a release number found in the banner.
func MajorVersion(version, banner string) int {
	if head, _, _ := strings.Cut(strings.TrimSpace(version), "."); head != "" {
		if v, err := strconv.Atoi(head); err == nil && v > 0 {
			return v
		}
	}
	if m := bannerRelease.FindStringSubmatch(banner); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v
		}
	}
	return 0
}

// VersionGap returns how many ladder steps separate major from the latest supported
// release. Unknown and newer releases have no gap.
func VersionGap(major int) int {
	latest := slices.Index(releaseLadder, latestSupportedRelease)
	if major <= 0 || major >= latestSupportedRelease {
		return 0
	}
	for i, r := range releaseLadder {
		if major <= r {
			return latest - i
		}
	}
	return 0
}

// NormalizeCharset upper-cases the first token of a charset description.
func NormalizeCharset(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// ClassifyCharset assigns a normalized charset to its conversion class.
func ClassifyCharset(charset string) CharsetClass {
	if charset == "" {
		return CharsetNone
	}
	if charset == canonicalCharset {
		return CharsetCanonical
	}
	if _, ok := singleByteCharsets[charset]; ok {
		return CharsetSingleByte
	}
	if _, ok := multiByteCharsets[charset]; ok {
		return CharsetMultiByte
	}
	if _, ok := legacyCharsets[charset]; ok {
		return CharsetLegacy
	}
	if strings.Contains(charset, "EBCDIC") {
		return CharsetLegacy
	}
	return CharsetUnrecognized
}
