package world

import (
	"math"

	"github.com/livingworld/kernel/internal/coglink"
	"github.com/livingworld/kernel/internal/emotion"
	"github.com/livingworld/kernel/internal/entity"
	"github.com/livingworld/kernel/internal/field"
	"github.com/livingworld/kernel/internal/learning"
	"github.com/livingworld/kernel/internal/memory"
	"github.com/livingworld/kernel/internal/physics"
	"github.com/livingworld/kernel/internal/relationship"
	"github.com/livingworld/kernel/internal/renderer"
	"github.com/livingworld/kernel/internal/rng"
	"github.com/livingworld/kernel/internal/trust"
	"github.com/livingworld/kernel/internal/worldmind"
)

// Tick advances the world by dt seconds of world_time, running the fixed
// phase order every caller must rely on: clock advance and context drain,
// physical, environmental, mental, communication, relational, cognitive,
// world-mind, field, sync/longing, rendering, invariant sweep.
func (w *World) Tick(dt float64) {
	w.worldTime += dt
	w.tickCount++
	w.drainContext()

	w.physicalPhase(dt)
	w.environmentalPhase(dt)
	w.mentalPhase(dt)
	w.communicationPhase()
	w.relationalPhase(dt)
	w.cognitivePhase()
	w.worldMindPhase()
	w.fieldPhase(dt)
	w.syncMomentPhase()
	w.renderingPhase(dt)
	w.invariantSweep()
}

func (w *World) physicalPhase(dt float64) {
	stream := w.rng.Stream("entity-update")
	for _, id := range w.entityOrder {
		e := w.entities[id]
		e.Update(dt, 0.0, 0.02, stream)
		e.Integrate(dt)
	}
}

func (w *World) environmentalPhase(dt float64) {
	w.weather.Update(dt)
	w.weather.Apply(w.env)
	nudge := w.weather.ValenceNudge()
	if nudge != 0 {
		for _, id := range w.entityOrder {
			w.entities[id].Feel(emotion.Delta{Valence: nudge})
		}
	}

	bodies := make([]physics.Body, 0, len(w.entityOrder))
	for _, id := range w.entityOrder {
		e := w.entities[id]
		envState := w.env.StateAt(e.X, e.Y)
		bodies = append(bodies, physics.Body{ID: id, X: e.X, Y: e.Y, Temperature: envState.Temperature, Opacity: e.Opacity})
	}
	pairs := physics.Detect(bodies, w.cfg.CollisionRadius)
	byID := make(map[string]physics.Body, len(bodies))
	for _, b := range bodies {
		byID[b.ID] = b
	}
	for _, p := range pairs {
		a, b := byID[p.AID], byID[p.BID]
		newA, newB := w.energySystem.ExchangeEntityEntity(a, b, dt)
		byID[p.AID], byID[p.BID] = newA, newB
		w.emit(WorldEvent{Time: w.worldTime, Type: EventEntityCollision, Data: map[string]any{"a": p.AID, "b": p.BID}})
	}
	for id, body := range byID {
		envState := w.env.StateAt(body.X, body.Y)
		body = w.energySystem.ExchangeEntityEnvironment(body, envState.Temperature, dt)
		body = w.energySystem.DecayOpacity(body, dt)
		e := w.entities[id]
		e.Temperature = body.Temperature
		e.Opacity = body.Opacity
	}
}

func (w *World) mentalPhase(dt float64) {
	for _, id := range w.entityOrder {
		e := w.entities[id]
		if e.Memory != nil {
			e.Memory.Decay(dt, w.cfg.MemoryDecayRate)
			e.Memory.Forget(0.02)
		}
		e.Emotion = emotion.DriftToBaseline(e.Emotion, emotion.New(), w.cfg.EmotionDriftRate*dt)

		archetype := w.archetypes.Select(e.Emotion)
		coupler := physics.NewCoupler(archetype)
		coeffs := coupler.Apply(e.Emotion)
		e.VX *= coeffs.Speed
		e.VY *= coeffs.Speed

		if e.Intents != nil {
			e.Intents.Update(e.Age)
		}
	}
}

func (w *World) communicationPhase() {
	const broadcastRadius = 200.0
	const inboxMaxAge = 60.0

	for _, fromID := range w.entityOrder {
		from := w.entities[fromID]
		msgs := from.DrainOutbox()
		for _, m := range msgs {
			for _, toID := range w.entityOrder {
				if toID == fromID {
					continue
				}
				to := w.entities[toID]
				dist := math.Hypot(to.X-from.X, to.Y-from.Y)
				if dist <= broadcastRadius {
					to.Deliver(m)
				}
			}
		}
	}
	for _, id := range w.entityOrder {
		w.entities[id].TrimInbox(w.worldTime, inboxMaxAge)
	}
}

func (w *World) relationalPhase(dt float64) {
	ids := w.entityOrder
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := w.entities[ids[i]], w.entities[ids[j]]
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			if dist > w.cfg.RelationalRadius {
				continue
			}
			w.interact(ids[i], a, ids[j], b, dt)
		}
	}
}

func (w *World) interact(idA string, a *entity.Entity, idB string, b *entity.Entity, dt float64) {
	a.Remember(memory.Memory{Timestamp: w.worldTime, Type: memory.TypeInteraction, Subject: memory.Subject(idB), Salience: 0.3})
	b.Remember(memory.Memory{Timestamp: w.worldTime, Type: memory.TypeInteraction, Subject: memory.Subject(idA), Salience: 0.3})

	const contagionRate = 0.01
	aEmotion := a.Emotion
	bEmotion := b.Emotion
	a.Feel(emotion.Delta{
		Valence:   (bEmotion.Valence - aEmotion.Valence) * contagionRate * dt,
		Arousal:   (bEmotion.Arousal - aEmotion.Arousal) * contagionRate * dt,
		Dominance: (bEmotion.Dominance - aEmotion.Dominance) * contagionRate * dt,
	})
	b.Feel(emotion.Delta{
		Valence:   (aEmotion.Valence - bEmotion.Valence) * contagionRate * dt,
		Arousal:   (aEmotion.Arousal - bEmotion.Arousal) * contagionRate * dt,
		Dominance: (aEmotion.Dominance - bEmotion.Dominance) * contagionRate * dt,
	})

	relA := a.Relationships[idB]
	relB := b.Relationships[idA]
	if !relA.HasInteracted {
		relA = relationship.Create()
	}
	if !relB.HasInteracted {
		relB = relationship.Create()
	}
	relA = relationship.Update(relA, relationship.Neutral, 0.05, w.worldTime)
	relB = relationship.Update(relB, relationship.Neutral, 0.05, w.worldTime)
	a.Relationships[idB] = relA
	b.Relationships[idA] = relB

	avgStrength := (relA.Strength() + relB.Strength()) / 2
	if avgStrength > 0.3 {
		dx, dy := b.X-a.X, b.Y-a.Y
		dist := math.Hypot(dx, dy)
		if dist > 1e-6 {
			pull := 0.01 * dt
			a.VX += dx / dist * pull
			a.VY += dy / dist * pull
			b.VX -= dx / dist * pull
			b.VY -= dy / dist * pull
		}
	}
}

func (w *World) cognitivePhase() {
	for _, id := range w.entityOrder {
		e := w.entities[id]
		if e.Memory != nil {
			crystallizer := w.crystals[id]
			crystallizer.Consolidate(e.Memory.Recall(memory.Filter{}), w.worldTime)
		}
		if e.Links != nil {
			e.Links.Decay(1.0/60.0, 0.002)
		}
		if e.Skills != nil {
			e.Skills.Decay(1.0 / 60.0)
		}
		if e.Learning != nil {
			e.Learning.ForgetOld(w.worldTime, learning.ForgetOldMaxAge)
		}
		for target, rel := range e.Relationships {
			updated, prune := w.decayManager.Apply(rel, w.worldTime)
			if prune {
				delete(e.Relationships, target)
				continue
			}
			e.Relationships[target] = updated
		}
	}
}

func (w *World) worldMindPhase() {
	const statsIntervalMs = 1000.0
	if w.worldTime*1000-w.lastStatsUpdate < statsIntervalMs && w.tickCount > 1 {
		return
	}
	w.lastStatsUpdate = w.worldTime * 1000

	snapshots := make([]worldmind.Snapshot, 0, len(w.entityOrder))
	for _, id := range w.entityOrder {
		e := w.entities[id]
		memCount := 0
		if e.Memory != nil {
			memCount = e.Memory.Count()
		}
		snapshots = append(snapshots, worldmind.Snapshot{
			ID: id, Age: e.Age, Energy: e.Energy,
			VelX: e.VX, VelY: e.VY, PosX: e.X, PosY: e.Y,
			Valence: e.Emotion.Valence, Arousal: e.Emotion.Arousal, Dominance: e.Emotion.Dominance,
			Memories: memCount,
		})
	}
	w.stats = worldmind.CalculateStats(snapshots)
	w.patterns = worldmind.DetectPatterns(snapshots, worldmind.DefaultThresholds())
	w.emit(WorldEvent{Time: w.worldTime, Type: EventWorldStats, Data: map[string]any{"stats": w.stats, "patterns": w.patterns}})
}

func (w *World) fieldPhase(dt float64) {
	dtMs := dt * 1000
	candidates := make([]field.EntityPosition, 0, len(w.entityOrder))
	for _, id := range w.entityOrder {
		e := w.entities[id]
		candidates = append(candidates, field.EntityPosition{ID: id, X: e.X, Y: e.Y})
	}

	var survivors []string
	for _, id := range w.fieldOrder {
		f := w.fields[id]
		effects := f.Update(dtMs, candidates)
		w.applyFieldEffects(effects)
		if f.Expired {
			w.emit(WorldEvent{Time: w.worldTime, Type: EventFieldExpired, Data: map[string]any{"field_id": id, "spec_id": f.SpecID}})
			delete(w.fields, id)
			continue
		}
		survivors = append(survivors, id)
	}
	w.fieldOrder = survivors
}

func (w *World) applyFieldEffects(effects []field.TargetEffect) {
	for _, eff := range effects {
		e, ok := w.entities[eff.EntityID]
		if !ok {
			continue
		}
		if eff.HasOpacity && e.Opacity < eff.OpacityFloor {
			e.Opacity = eff.OpacityFloor
		}
		e.Feel(emotion.Delta{Valence: eff.ValenceDelta, Arousal: eff.ArousalDelta, Dominance: eff.DominanceDelta})
		if eff.HasRelationshipBoost && eff.SourceEntityID != "" && eff.SourceEntityID != eff.EntityID {
			rel := e.Relationships[eff.SourceEntityID]
			if !rel.HasInteracted {
				rel = relationship.Create()
			}
			rel.Trust = rng.Clamp01(rel.Trust + eff.RelationshipBoost)
			rel.Familiarity = rng.Clamp01(rel.Familiarity + eff.RelationshipBoost/2)
			e.Relationships[eff.SourceEntityID] = rel
		}
		if eff.HasLinkReinforce && e.Links != nil && eff.SourceEntityID != "" {
			e.Links.Reinforce(eff.SourceEntityID, eff.LinkReinforce, w.worldTime)
		}
	}
}

// spawnField registers a new field in insertion order and emits the
// corresponding event.
func (w *World) spawnField(specID string, originX, originY, durationMs, radiusPx float64, effects map[field.Channel]float64, source string, hasSource bool) *field.Field {
	id := rng.NewID()
	f := field.New(id, specID, originX, originY, durationMs, radiusPx)
	f.Effects = effects
	f.SourceEntityID = source
	f.HasSource = hasSource
	w.fields[id] = f
	w.fieldOrder = append(w.fieldOrder, id)
	w.emit(WorldEvent{Time: w.worldTime, Type: EventFieldSpawned, Data: map[string]any{"field_id": id, "spec_id": specID}})
	return f
}

func (w *World) syncMomentPhase() {
	ids := w.entityOrder
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			idA, idB := ids[i], ids[j]
			a, b := w.entities[idA], w.entities[idB]
			dv := math.Abs(a.Emotion.Valence - b.Emotion.Valence)
			da := math.Abs(a.Emotion.Arousal - b.Emotion.Arousal)
			if dv+da >= w.cfg.SyncMomentThreshold {
				continue
			}
			key := pairKey(idA, idB)
			if w.worldTime-w.lastInteraction[key] < 5.0 {
				continue
			}
			w.lastInteraction[key] = w.worldTime

			midX, midY := (a.X+b.X)/2, (a.Y+b.Y)/2
			w.spawnField("field.sync_moment", midX, midY, 5000, 200, map[field.Channel]float64{
				field.ChannelValence:           30,
				field.ChannelArousal:           10,
				field.ChannelRelationshipBoost: 500,
			}, idA, true)
			w.emit(WorldEvent{Time: w.worldTime, Type: EventSyncMoment, Data: map[string]any{"a": idA, "b": idB}})

			w.trySyncMemories(idA, idB)
			w.trySyncMemories(idB, idA)
		}
	}
}

// trySyncMemories attempts a trust-gated CRDT memory merge from srcID into
// dstID's log, emitting trust_blocked if the share policy refuses.
func (w *World) trySyncMemories(srcID, dstID string) {
	srcTrust := w.trustSystems[srcID]
	if srcTrust == nil || !srcTrust.ShouldShare(trust.CategoryMemory, dstID) {
		w.emit(WorldEvent{Time: w.worldTime, Type: EventTrustBlocked, Data: map[string]any{"from": srcID, "to": dstID, "category": "memory"}})
		return
	}
	srcLog := w.memoryLogs[srcID]
	dstLog := w.memoryLogs[dstID]
	if srcLog == nil || dstLog == nil {
		return
	}
	dstLog.Merge(srcLog)
	srcTrust.UpdateTrust(dstID, 0.05)

	if dst, ok := w.entities[dstID]; ok {
		rel := dst.Relationships[srcID]
		if !rel.HasInteracted {
			rel = relationship.Create()
		}
		rel.Trust = rng.Clamp01(rel.Trust + 0.05)
		dst.Relationships[srcID] = rel
	}
}

func (w *World) renderingPhase(dt float64) {
	entities := make([]renderer.EntityView, 0, len(w.entityOrder))
	for _, id := range w.entityOrder {
		e := w.entities[id]
		entities = append(entities, renderer.EntityView{
			ID: id, X: e.X, Y: e.Y, Opacity: e.Opacity,
			Valence: e.Emotion.Valence, Arousal: e.Emotion.Arousal, Dominance: e.Emotion.Dominance,
		})
	}
	fields := make([]renderer.FieldView, 0, len(w.fieldOrder))
	for _, id := range w.fieldOrder {
		f := w.fields[id]
		fields = append(fields, renderer.FieldView{ID: id, OriginX: f.OriginX, OriginY: f.OriginY, RadiusPx: f.RadiusPx, Strength: f.Strength()})
	}

	if batch, ok := renderer.HasRenderAll(w.adapter); ok {
		batch.RenderAll(entities, fields)
		return
	}
	for _, ev := range entities {
		w.adapter.Update(ev, dt)
	}
}

// invariantSweep repairs cognitive-link mirrors and drops dangling
// relationship/link references left by an entity removed mid-tick.
func (w *World) invariantSweep() {
	ids := w.EntityIDs()
	coglink.EnsureMirrors(w, ids, w.worldTime)
	live := make(map[string]bool, len(ids))
	for _, id := range ids {
		live[id] = true
	}
	for _, id := range ids {
		e := w.entities[id]
		for target := range e.Relationships {
			if !live[target] {
				delete(e.Relationships, target)
			}
		}
		if e.Links == nil {
			continue
		}
		for _, target := range e.Links.GetConnectedIDs() {
			if !live[target] {
				e.Links.Remove(target)
			}
		}
	}
}
