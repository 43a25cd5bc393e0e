package object

import (
	"fmt"

	"github.com/cory-johannsen/gamedata/internal/parse"
)

// reservedArtifactSlots is the number of empty trailing slots the
// artifact table keeps for the late-bound reward set.
const reservedArtifactSlots = 9

// sentinelInherit marks a synthetic kind's level and weight as "take
// the value from the artifact record once it is parsed".
const sentinelInherit = -1

// Artifact is one artifact record.
type Artifact struct {
	Index      int
	Name       string
	Tval       int
	Sval       int
	Level      int
	Weight     int
	AllocProb  int
	AllocMin   int
	AllocMax   int
	DamageDice int
	DamageSides int
	ToH        int
	ToD        int
	AC         int
	ToA        int
	Flags      parse.FlagSet
	ElInfo     []ElementInfo
	Activation *Activation
	Time       parse.Random
	AltMsg     string
	Modifiers  []int
	Slays      []bool
	Brands     []bool
	Curses     []int
	Text       string
	Next       *Artifact

	next *Artifact
}

type artifactBuilder struct {
	cat  *Catalog
	head *Artifact
}

func newArtifactParser(cat *Catalog) *parse.Parser[*artifactBuilder] {
	p := parse.New(&artifactBuilder{cat: cat})
	p.Register("name str name", parseArtifactName)
	p.Register("base-object sym tval sym sval", parseArtifactBaseObject)
	p.Register("graphics char glyph sym color", parseArtifactGraphics)
	p.Register("level int level", parseArtifactLevel)
	p.Register("weight int weight", parseArtifactWeight)
	p.Register("alloc int common str minmax", parseArtifactAlloc)
	p.Register("attack rand hd int to-h int to-d", parseArtifactAttack)
	p.Register("armor int ac int to-a", parseArtifactArmor)
	p.Register("flags ?str flags", parseArtifactFlags)
	p.Register("act str name", parseArtifactAct)
	p.Register("time rand time", parseArtifactTime)
	p.Register("msg str text", parseArtifactMsg)
	p.Register("values str values", parseArtifactValues)
	p.Register("desc str text", parseArtifactDesc)
	p.Register("slay str code", parseArtifactSlay)
	p.Register("brand str code", parseArtifactBrand)
	p.Register("curse sym name int power", parseArtifactCurse)
	return p
}

func parseArtifactName(v parse.Values, b *artifactBuilder) error {
	names := b.cat.names
	a := &Artifact{
		Name:      v.Str("name"),
		Flags:     parse.NewFlagSet(uint(len(names.ObjectFlags))),
		ElInfo:    newElementInfo(names),
		Modifiers: make([]int, len(names.Modifiers)),
		next:      b.head,
	}
	// Artifacts shrug off every base element unless told otherwise.
	for i := 0; i < names.ElementBaseCount(); i++ {
		a.ElInfo[i].Flags |= ElementIgnore
	}
	b.head = a
	return nil
}

// writeSyntheticKind appends a brand-new object kind for an artifact
// whose declared base kind does not exist. The kind gets the next sval
// of the artifact's tval, placeholder graphics, sentinel level and
// weight to be back-filled from the artifact, and the unique-instance
// kind flag.
func writeSyntheticKind(cat *Catalog, a *Artifact, name string) error {
	k := newKindRecord(cat, fmt.Sprintf("& %s~", name))
	k.Index = len(cat.Kinds)
	k.Tval = a.Tval
	k.Base = &cat.Bases[a.Tval]
	k.Base.NumSvals++
	k.Sval = k.Base.NumSvals
	a.Sval = k.Sval

	// Placeholder colours; a graphics directive should overwrite them.
	k.Glyph = '*'
	k.Attr = cat.names.ColorAttr("r")

	k.Level = sentinelInherit
	k.Weight = sentinelInherit

	instaArt := parse.LookupName(cat.names.KindFlags, "INSTA_ART")
	if instaArt < 0 {
		return fmt.Errorf("%w: kind flag table lacks INSTA_ART", parse.ErrInvalidFlag)
	}
	k.KindFlags.Set(uint(instaArt))

	if n := len(cat.Kinds); n > 0 {
		cat.Kinds[n-1].Next = k
	}
	cat.Kinds = append(cat.Kinds, k)
	return nil
}

func parseArtifactBaseObject(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	tvalName := v.Sym("tval")
	tval := b.cat.names.TvalIndex(tvalName)
	if tval < 0 {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedTval, tvalName)
	}
	b.head.Tval = tval

	svalName := v.Sym("sval")
	sval, ok := b.cat.LookupSval(tval, svalName)
	if !ok {
		return writeSyntheticKind(b.cat, b.head, svalName)
	}
	b.head.Sval = sval
	return nil
}

func parseArtifactGraphics(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	k := b.cat.LookupKind(b.head.Tval, b.head.Sval)
	if k == nil {
		return parse.ErrMissingRecordHeader
	}
	instaArt := parse.LookupName(b.cat.names.KindFlags, "INSTA_ART")
	if instaArt < 0 || !k.KindFlags.Has(uint(instaArt)) {
		return fmt.Errorf("%w: %q", parse.ErrNotSpecialArtifact, b.head.Name)
	}
	color := v.Sym("color")
	attr := b.cat.names.ColorAttr(color)
	if attr < 0 {
		return fmt.Errorf("%w: %q", parse.ErrInvalidColor, color)
	}
	k.Glyph = v.Char("glyph")
	k.Attr = attr
	return nil
}

func parseArtifactLevel(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	k := b.cat.LookupKind(b.head.Tval, b.head.Sval)
	if k == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Level = v.Int("level")
	// Back-fill the synthetic kind's sentinel.
	if k.Level == sentinelInherit {
		k.Level = b.head.Level
	}
	return nil
}

func parseArtifactWeight(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	k := b.cat.LookupKind(b.head.Tval, b.head.Sval)
	if k == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Weight = v.Int("weight")
	// Back-fill the synthetic kind's sentinel.
	if k.Weight == sentinelInherit {
		k.Weight = b.head.Weight
	}
	return nil
}

func parseArtifactAlloc(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	amin, amax, err := parseAllocBounds(v.Str("minmax"))
	if err != nil {
		return err
	}
	if amin < 0 || amin > 255 || amax < 0 || amax > 255 {
		return fmt.Errorf("%w: allocation bounds %d to %d", parse.ErrOutOfBounds, amin, amax)
	}
	b.head.AllocProb = v.Int("common")
	b.head.AllocMin = amin
	b.head.AllocMax = amax
	return nil
}

func parseArtifactAttack(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	hd := v.Rand("hd")
	b.head.DamageDice = hd.Dice
	b.head.DamageSides = hd.Sides
	b.head.ToH = v.Int("to-h")
	b.head.ToD = v.Int("to-d")
	return nil
}

func parseArtifactArmor(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.AC = v.Int("ac")
	b.head.ToA = v.Int("to-a")
	return nil
}

func parseArtifactFlags(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	if !v.Has("flags") {
		return nil
	}
	a := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("flags"), parse.ErrInvalidFlag, func(t string) bool {
		found := false
		if parse.GrabFlag(a.Flags, names.ObjectFlags, t) {
			found = true
		}
		if grabElementFlag(a.ElInfo, names, t) {
			found = true
		}
		return found
	})
}

func parseArtifactAct(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	act := b.cat.FindActivation(v.Str("name"))
	// Light-source activations belong to the base kind, not the
	// artifact.
	if b.head.Tval == b.cat.tvalLight {
		if k := b.cat.LookupKind(b.head.Tval, b.head.Sval); k != nil {
			k.Activation = act
		}
		return nil
	}
	b.head.Activation = act
	return nil
}

func parseArtifactTime(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	t := v.Rand("time")
	// Light-source recharge times belong to the base kind too.
	if b.head.Tval == b.cat.tvalLight {
		if k := b.cat.LookupKind(b.head.Tval, b.head.Sval); k != nil {
			k.Time = t
		}
		return nil
	}
	b.head.Time = t
	return nil
}

func parseArtifactMsg(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.AltMsg += v.Str("text")
	return nil
}

func parseArtifactValues(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	a := b.head
	names := b.cat.names
	return parse.ScanTokens(v.Str("values"), parse.ErrInvalidValue, func(t string) bool {
		if i, val, ok := parse.GrabIndexAndInt(names.Modifiers, "", t); ok {
			a.Modifiers[i] = val
			return true
		}
		if i, val, ok := parse.GrabIndexAndInt(names.Elements, "RES_", t); ok {
			a.ElInfo[i].ResLevel = val
			return true
		}
		return false
	})
}

func parseArtifactDesc(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	b.head.Text += v.Str("text")
	return nil
}

func parseArtifactSlay(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	code := v.Str("code")
	i, ok := b.cat.slayByCode[code]
	if !ok {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedSlay, code)
	}
	if b.head.Slays == nil {
		b.head.Slays = make([]bool, len(b.cat.Slays))
	}
	b.head.Slays[i] = true
	return nil
}

func parseArtifactBrand(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	code := v.Str("code")
	i, ok := b.cat.brandByCode[code]
	if !ok {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedBrand, code)
	}
	if b.head.Brands == nil {
		b.head.Brands = make([]bool, len(b.cat.Brands))
	}
	b.head.Brands[i] = true
	return nil
}

func parseArtifactCurse(v parse.Values, b *artifactBuilder) error {
	if b.head == nil {
		return parse.ErrMissingRecordHeader
	}
	name := v.Sym("name")
	i, ok := b.cat.LookupCurse(name)
	if !ok {
		return fmt.Errorf("%w: %q", parse.ErrUnrecognisedCurse, name)
	}
	if b.head.Curses == nil {
		b.head.Curses = make([]int, len(b.cat.Curses))
	}
	b.head.Curses[i] = v.Int("power")
	return nil
}

// finishArtifacts materializes the table with the reserved trailing
// slots, then wires each curse's item payload to the curse object kind
// now that the kind table is complete.
func (c *Catalog) finishArtifacts(b *artifactBuilder) error {
	n := 0
	for a := b.head; a != nil; a = a.next {
		n++
	}
	c.artifactCount = n
	c.Artifacts = make([]Artifact, n+reservedArtifactSlots)
	i := n - 1
	for a := b.head; a != nil; a = a.next {
		c.Artifacts[i] = *a
		c.Artifacts[i].Index = i
		c.Artifacts[i].next = nil
		i--
	}
	for i := 0; i < n; i++ {
		if i < n-1 {
			c.Artifacts[i].Next = &c.Artifacts[i+1]
		} else {
			c.Artifacts[i].Next = nil
		}
	}
	for i := n; i < n+reservedArtifactSlots; i++ {
		c.Artifacts[i].Index = i
	}

	c.wireCurseKinds()
	return nil
}

// wireCurseKinds points every curse's item payload at the dedicated
// curse object kind, if the kind table defines one.
func (c *Catalog) wireCurseKinds() {
	sval, ok := c.LookupSval(c.tvalNone, "<curse object>")
	if !ok {
		return
	}
	c.curseKind = c.LookupKind(c.tvalNone, sval)
	if c.curseKind == nil {
		return
	}
	for i := range c.Curses {
		if c.Curses[i].Obj != nil {
			c.Curses[i].Obj.Kind = c.curseKind
			c.Curses[i].Obj.Sval = sval
		}
	}
}
