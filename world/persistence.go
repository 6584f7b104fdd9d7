package world

import (
	"encoding/json"
	"fmt"

	"github.com/livingworld/kernel/internal/coglink"
	"github.com/livingworld/kernel/internal/emotion"
	"github.com/livingworld/kernel/internal/entity"
	"github.com/livingworld/kernel/internal/field"
	"github.com/livingworld/kernel/internal/intent"
	"github.com/livingworld/kernel/internal/learning"
	"github.com/livingworld/kernel/internal/memory"
	"github.com/livingworld/kernel/internal/relationship"
	"github.com/livingworld/kernel/internal/skill"
	"github.com/livingworld/kernel/internal/snapshot"
	"github.com/livingworld/kernel/internal/trust"
)

// Snapshot captures the world's full persistent state into an opaque
// WorldFile document, in registry insertion order so a restored world
// iterates identically to the one that was saved.
func (w *World) Snapshot() (snapshot.WorldFile, error) {
	wf := snapshot.WorldFile{
		Seed:      w.seed,
		WorldTime: w.worldTime,
		TickCount: w.tickCount,
	}

	for _, id := range w.entityOrder {
		e := w.entities[id]
		es, err := snapshotEntity(e)
		if err != nil {
			return snapshot.WorldFile{}, fmt.Errorf("snapshot entity %s: %w", id, err)
		}
		wf.Entities = append(wf.Entities, es)

		if log := w.memoryLogs[id]; log != nil && log.Len() > 0 {
			records, err := json.Marshal(log.Records())
			if err != nil {
				return snapshot.WorldFile{}, fmt.Errorf("snapshot memory log %s: %w", id, err)
			}
			wf.MemoryLogs = append(wf.MemoryLogs, snapshot.MemoryLogSnapshot{EntityID: id, Records: records})
		}
		if ts := w.trustSystems[id]; ts != nil {
			wf.Trust = append(wf.Trust, snapshot.TrustSnapshot{EntityID: id, Trust: ts.Dump()})
		}
	}

	for _, id := range w.fieldOrder {
		f := w.fields[id]
		effects := make(map[string]float64, len(f.Effects))
		for ch, v := range f.Effects {
			effects[string(ch)] = v
		}
		wf.Fields = append(wf.Fields, snapshot.FieldSnapshot{
			ID: f.ID, SpecID: f.SpecID, X: f.OriginX, Y: f.OriginY,
			ElapsedMs: f.ElapsedMs, DurationMs: f.DurationMs, RadiusPx: f.RadiusPx, Expired: f.Expired,
			Effects: effects, SourceEntityID: f.SourceEntityID, HasSource: f.HasSource,
		})
	}

	for _, ev := range w.events {
		data, err := json.Marshal(ev.Data)
		if err != nil {
			return snapshot.WorldFile{}, fmt.Errorf("snapshot event log: %w", err)
		}
		wf.EventLog = append(wf.EventLog, snapshot.EventSnapshot{Type: string(ev.Type), WorldTime: ev.Time, Data: data})
	}

	return wf, nil
}

func snapshotEntity(e *entity.Entity) (snapshot.EntitySnapshot, error) {
	es := snapshot.EntitySnapshot{
		ID: e.ID, MaterialID: e.MaterialID,
		X: e.X, Y: e.Y, VX: e.VX, VY: e.VY,
		Age: e.Age, Opacity: e.Opacity, Entropy: e.Entropy, Energy: e.Energy,
		Features:        uint16(e.Features()),
		NativeLanguage:  e.NativeLanguage, LanguageWeights: e.LanguageWeights,
	}
	if e.Temperature != 0 {
		t := e.Temperature
		es.Temperature = &t
	}
	if e.Humidity != 0 {
		h := e.Humidity
		es.Humidity = &h
	}

	emotionJSON, err := json.Marshal(e.Emotion)
	if err != nil {
		return es, err
	}
	es.Emotion = emotionJSON

	if e.Memory != nil {
		memJSON, err := json.Marshal(e.Memory.ToSnapshot())
		if err != nil {
			return es, err
		}
		es.Memory = memJSON
	}
	if e.Intents != nil {
		intentJSON, err := json.Marshal(e.Intents.All())
		if err != nil {
			return es, err
		}
		es.Intent = intentJSON
	}
	if len(e.Relationships) > 0 {
		relJSON, err := json.Marshal(e.Relationships)
		if err != nil {
			return es, err
		}
		es.Relationships = relJSON
	}
	if e.Links != nil && e.Links.Len() > 0 {
		linkJSON, err := json.Marshal(e.Links.All())
		if err != nil {
			return es, err
		}
		es.CognitiveLinks = linkJSON
	}
	if e.Skills != nil && e.Skills.Count() > 0 {
		skillsJSON, err := json.Marshal(e.Skills.All())
		if err != nil {
			return es, err
		}
		es.Skills = skillsJSON
	}
	if e.Learning != nil && e.Learning.Count() > 0 {
		learningJSON, err := json.Marshal(e.Learning.All())
		if err != nil {
			return es, err
		}
		es.Learning = learningJSON
	}
	if len(e.TriggerContext) > 0 {
		ctxJSON, err := json.Marshal(e.TriggerContext)
		if err != nil {
			return es, err
		}
		es.TriggerContext = ctxJSON
	}
	return es, nil
}

// Restore replaces the world's entity/field/log state with the contents of
// a WorldFile, reconstructing cognitive-link mirrors afterward since the
// stored form is per-entity and may have lost the reverse edge if the file
// was hand-edited or predates this safeguard.
func (w *World) Restore(wf snapshot.WorldFile) error {
	w.entities = make(map[string]*entity.Entity)
	w.entityOrder = nil
	w.trustSystems = make(map[string]*trust.System)
	w.memoryLogs = make(map[string]*memory.Log)
	w.crystals = make(map[string]*memory.Crystallizer)
	w.fields = make(map[string]*field.Field)
	w.fieldOrder = nil
	w.events = nil

	w.seed = wf.Seed
	w.worldTime = wf.WorldTime
	w.tickCount = wf.TickCount

	for _, es := range wf.Entities {
		e, err := restoreEntity(es)
		if err != nil {
			return fmt.Errorf("restore entity %s: %w", es.ID, err)
		}
		w.entities[es.ID] = e
		w.entityOrder = append(w.entityOrder, es.ID)
		w.crystals[es.ID] = newCrystallizer()
	}

	for _, ts := range wf.Trust {
		s := newTrustSystem()
		for target, v := range ts.Trust {
			s.SetTrust(target, v)
		}
		w.trustSystems[ts.EntityID] = s
	}
	for _, mls := range wf.MemoryLogs {
		var records []memory.Record
		if err := json.Unmarshal(mls.Records, &records); err != nil {
			return fmt.Errorf("restore memory log %s: %w", mls.EntityID, err)
		}
		w.memoryLogs[mls.EntityID] = memory.LoadLog(mls.EntityID, records)
	}
	for _, fs := range wf.Fields {
		effects := make(map[field.Channel]float64, len(fs.Effects))
		for ch, v := range fs.Effects {
			effects[field.Channel(ch)] = v
		}
		f := field.New(fs.ID, fs.SpecID, fs.X, fs.Y, fs.DurationMs, fs.RadiusPx)
		f.Effects = effects
		f.ElapsedMs = fs.ElapsedMs
		f.Expired = fs.Expired
		f.SourceEntityID = fs.SourceEntityID
		f.HasSource = fs.HasSource
		if !f.Expired {
			w.fields[fs.ID] = f
			w.fieldOrder = append(w.fieldOrder, fs.ID)
		}
	}
	for id := range w.entities {
		if _, ok := w.trustSystems[id]; !ok {
			w.trustSystems[id] = newTrustSystem()
		}
		if _, ok := w.memoryLogs[id]; !ok {
			w.memoryLogs[id] = memory.NewLog(id)
		}
		if _, ok := w.crystals[id]; !ok {
			w.crystals[id] = newCrystallizer()
		}
	}

	repaired := coglink.EnsureMirrors(w, w.EntityIDs(), w.worldTime)
	if repaired > 0 && w.logger != nil {
		w.logger.Printf("restore: reconstructed %d missing cognitive-link mirror(s)", repaired)
	}
	return nil
}

func restoreEntity(es snapshot.EntitySnapshot) (*entity.Entity, error) {
	e := entity.New(es.ID, es.MaterialID, 64, entity.Feature(es.Features))
	e.X, e.Y, e.VX, e.VY = es.X, es.Y, es.VX, es.VY
	e.Age, e.Opacity, e.Entropy, e.Energy = es.Age, es.Opacity, es.Entropy, es.Energy
	e.NativeLanguage = es.NativeLanguage
	e.LanguageWeights = es.LanguageWeights
	if es.Temperature != nil {
		e.Temperature = *es.Temperature
	}
	if es.Humidity != nil {
		e.Humidity = *es.Humidity
	}

	if len(es.Emotion) > 0 {
		var s emotion.State
		if err := json.Unmarshal(es.Emotion, &s); err != nil {
			return nil, err
		}
		e.Emotion = emotion.Sanitize(s)
	}
	if len(es.Memory) > 0 {
		var ms memory.Snapshot
		if err := json.Unmarshal(es.Memory, &ms); err != nil {
			return nil, err
		}
		e.Memory = memory.FromSnapshot(ms)
	}
	if len(es.Intent) > 0 {
		var intents []intent.Intent
		if err := json.Unmarshal(es.Intent, &intents); err != nil {
			return nil, err
		}
		e.Intents = intent.NewStack()
		for _, i := range intents {
			e.Intents.Push(i)
		}
	}
	if len(es.Relationships) > 0 {
		var rels map[string]relationship.Relationship
		if err := json.Unmarshal(es.Relationships, &rels); err != nil {
			return nil, err
		}
		e.Relationships = rels
	}
	if len(es.CognitiveLinks) > 0 {
		var links []coglink.Link
		if err := json.Unmarshal(es.CognitiveLinks, &links); err != nil {
			return nil, err
		}
		e.Links = coglink.NewTable()
		for _, l := range links {
			e.Links.Connect(l.TargetID, l.Strength, l.Bidirectional, l.LastReinforced)
		}
	}
	if len(es.Skills) > 0 {
		var skills []skill.Skill
		if err := json.Unmarshal(es.Skills, &skills); err != nil {
			return nil, err
		}
		e.Skills = skill.NewSystem(entity.DefaultSkillDecayRate)
		e.Skills.Load(skills)
	}
	if len(es.Learning) > 0 {
		var patterns []learning.Pattern
		if err := json.Unmarshal(es.Learning, &patterns); err != nil {
			return nil, err
		}
		e.Learning = learning.NewSystem()
		e.Learning.Load(patterns)
	}
	if len(es.TriggerContext) > 0 {
		var ctx map[string]any
		if err := json.Unmarshal(es.TriggerContext, &ctx); err != nil {
			return nil, err
		}
		e.TriggerContext = ctx
	}
	return e, nil
}
