// Package document assembles the content model of a quote or contract and
// renders it as plain text or PDF. Assembly is pure: the same Input always
// yields the same Document.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/jardin/internal/domain"
)

// Kind selects the document heading.
type Kind string

const (
	KindQuote    Kind = "quote"
	KindContract Kind = "contract"
)

const (
	introText = "We are pleased to present the following proposal, which includes the services detailed below:"

	exclusionText = "The following items are not included in this proposal and, if required, must be " +
		"coordinated and quoted separately:"

	staffText = "All assigned staff belong to our company, wear the company uniform, have their social " +
		"security contributions up to date and are equipped with the personal protective equipment " +
		"(PPE) required by current regulations."
)

// Input is everything needed to assemble one document.
type Input struct {
	Kind             Kind
	Number           string
	Date             time.Time
	CompanyName      string
	Client           domain.Client
	CityName         string
	Plans            []domain.AddedPlan
	Considerations   string
	EconomicProposal string
}

// Line is one task name in the included or excluded list.
type Line struct {
	TaskID string
	Name   string
}

type BlockKind string

const (
	BlockHeader           BlockKind = "header"
	BlockClient           BlockKind = "client"
	BlockIntro            BlockKind = "intro"
	BlockPlans            BlockKind = "plans"
	BlockIncluded         BlockKind = "included"
	BlockExcluded         BlockKind = "excluded"
	BlockConsiderations   BlockKind = "considerations"
	BlockEconomicProposal BlockKind = "economic_proposal"
	BlockStaff            BlockKind = "staff"
	BlockSignature        BlockKind = "signature"
)

// Block is one section of the rendered document. Paragraphs are wrapped by
// the renderer; Items are rendered one per line.
type Block struct {
	Kind      BlockKind
	Title     string
	Paragraph string
	Items     []string
}

type Document struct {
	Title    string
	Included []Line
	Excluded []Line
	Blocks   []Block
}

// Assemble builds the content model. Included tasks are unique by task id in
// first-seen order. Excluded tasks are unique by task id and never repeat a
// task that is included through any plan.
func Assemble(in Input) Document {
	included, excluded := splitTasks(in.Plans)

	doc := Document{
		Title:    title(in),
		Included: included,
		Excluded: excluded,
	}

	header := Block{Kind: BlockHeader, Title: doc.Title, Items: []string{"Date: " + in.Date.Format("2006-01-02")}}
	if in.CompanyName != "" {
		header.Items = append([]string{in.CompanyName}, header.Items...)
	}
	doc.Blocks = append(doc.Blocks, header)
	doc.Blocks = append(doc.Blocks, clientBlock(in))
	doc.Blocks = append(doc.Blocks, Block{Kind: BlockIntro, Paragraph: introText})

	if plans := planItems(in.Plans); len(plans) > 0 {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockPlans, Title: "Service plans", Items: plans})
	}
	if len(included) > 0 {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockIncluded, Title: "Included services", Items: names(included)})
	}
	if len(excluded) > 0 {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockExcluded, Paragraph: exclusionText, Items: names(excluded)})
	}
	if s := strings.TrimSpace(in.Considerations); s != "" {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockConsiderations, Title: "Considerations", Paragraph: s})
	}
	if s := strings.TrimSpace(in.EconomicProposal); s != "" {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockEconomicProposal, Title: "Economic proposal", Paragraph: s})
	}
	doc.Blocks = append(doc.Blocks,
		Block{Kind: BlockStaff, Paragraph: staffText},
		Block{Kind: BlockSignature, Items: []string{
			"______________________________",
			domain.CoalesceStr(in.CompanyName, "Service provider"),
			"",
			"______________________________",
			in.Client.Name,
		}},
	)
	return doc
}

func splitTasks(plans []domain.AddedPlan) (included, excluded []Line) {
	seenIncluded := make(map[string]bool)
	seenExcluded := make(map[string]bool)
	var excludedAll []Line

	for _, p := range plans {
		for _, t := range p.Tasks {
			line := Line{TaskID: t.TaskID, Name: taskName(t)}
			if t.Included {
				if !seenIncluded[t.TaskID] {
					seenIncluded[t.TaskID] = true
					included = append(included, line)
				}
				continue
			}
			if !seenExcluded[t.TaskID] {
				seenExcluded[t.TaskID] = true
				excludedAll = append(excludedAll, line)
			}
		}
	}

	for _, line := range excludedAll {
		if !seenIncluded[line.TaskID] {
			excluded = append(excluded, line)
		}
	}
	return included, excluded
}

func taskName(t domain.StagedTask) string {
	if t.Name != "" {
		return t.Name
	}
	return "Task #" + t.TaskID
}

func title(in Input) string {
	heading := "SERVICE QUOTE"
	if in.Kind == KindContract {
		heading = "SERVICE CONTRACT"
	}
	if in.Number != "" {
		return heading + " #" + in.Number
	}
	return heading
}

func clientBlock(in Input) Block {
	c := in.Client
	items := []string{"Client: " + c.Name}
	address := c.Address
	if in.CityName != "" {
		if address != "" {
			address += ", "
		}
		address += in.CityName
	}
	items = append(items, "Address: "+address)
	if c.ContactName != "" {
		items = append(items, "Contact: "+c.ContactName)
	}
	if c.ContactPhone != "" {
		items = append(items, "Phone: "+c.ContactPhone)
	}
	if c.ContactEmail != "" {
		items = append(items, "Email: "+c.ContactEmail)
	}
	return Block{Kind: BlockClient, Items: items}
}

func planItems(plans []domain.AddedPlan) []string {
	var out []string
	for _, p := range plans {
		item := p.DisplayName()
		if !p.ReferencePrice.IsZero() {
			item = fmt.Sprintf("%s (reference price %s)", item, p.ReferencePrice.StringFixed(0))
		}
		out = append(out, item)
	}
	return out
}

func names(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Name
	}
	return out
}
