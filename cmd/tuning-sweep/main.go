// Command tuning-sweep flies the missile controller through a grid of gains
// and ranks them by how fast the missile settles on random seek targets.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"missile-demo/internal/core"
	"missile-demo/internal/entity"
	"missile-demo/internal/physics"

	"github.com/jakecoffman/cp"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type paramSet struct {
	maxAccel    float64
	speedGain   float64
	turnGain    float64
	turnDamping float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("accel=%.1f speedGain=%.1f turnGain=%.1f turnDamping=%.1f",
		p.maxAccel, p.speedGain, p.turnGain, p.turnDamping)
}

// scenarioResult aggregates one parameter set over every target. Each field
// holds the worst case.
type scenarioResult struct {
	params      paramSet
	settled     bool
	stepSettled int
	minDistance float64
	peakSpeed   float64
}

// settleRadius is how close the missile must stay to the target to count as
// settled.
const (
	settleRadius = 2.0
	settleTicks  = core.TicksPerSecond / 2
)

func main() {
	steps := flag.Int("steps", 900, "ticks to simulate per target")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	targetCount := flag.Int("targets", 4, "random seek targets per parameter set")
	seed := flag.Int64("seed", 1337, "seed for target placement")
	var overrides kvList
	flag.Var(&overrides, "set", "base tuning override in key=value form (repeatable)")
	flag.Parse()

	base := entity.DefaultMissileTuning
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		if err := applyOverride(&base, parts[0], parts[1]); err != nil {
			fmt.Printf("ignoring override %q: %v\n", kv, err)
		}
	}

	rng := core.NewRNG(*seed)
	targets := make([]cp.Vector, *targetCount)
	for i := range targets {
		targets[i] = rng.InRing(15, 40)
	}
	sets := paramGrid(base)

	fmt.Printf("Sweeping %d parameter sets over %d targets (%d workers, %d steps)\n", len(sets), len(targets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runSet(base, params, targets, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	rank(all)
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) settled=%v step=%d minDist=%.2f peakSpeed=%.2f params=%s\n",
			i+1, res.settled, res.stepSettled, res.minDistance, res.peakSpeed, res.params)
	}
}

func applyOverride(t *entity.Tuning, key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	switch key {
	case "max_speed":
		t.MaxSpeed = v
	case "max_accel":
		t.MaxAccel = v
	case "speed_gain":
		t.SpeedGain = v
	case "max_angular_accel":
		t.MaxAngularAccel = v
	case "turn_gain":
		t.TurnGain = v
	case "turn_damping":
		t.TurnDamping = v
	case "brake_gain":
		t.BrakeGain = v
	case "arrive_radius":
		t.ArriveRadius = v
	case "corner_rate":
		t.CornerRate = v
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func paramGrid(base entity.Tuning) []paramSet {
	var sets []paramSet
	for _, accel := range []float64{base.MaxAccel * 0.5, base.MaxAccel, base.MaxAccel * 1.5} {
		for _, speed := range []float64{base.SpeedGain * 0.5, base.SpeedGain, base.SpeedGain * 2} {
			for _, turn := range []float64{base.TurnGain * 0.5, base.TurnGain, base.TurnGain * 1.5} {
				for _, damp := range []float64{base.TurnDamping * 0.5, base.TurnDamping, base.TurnDamping * 1.5} {
					sets = append(sets, paramSet{maxAccel: accel, speedGain: speed, turnGain: turn, turnDamping: damp})
				}
			}
		}
	}
	return sets
}

// rank orders settled runs first, then by settle step, then by how close
// unsettled runs got.
func rank(all []scenarioResult) {
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.settled != b.settled {
			return a.settled
		}
		if a.settled {
			return a.stepSettled < b.stepSettled
		}
		return a.minDistance < b.minDistance
	})
}

func runSet(base entity.Tuning, params paramSet, targets []cp.Vector, steps int) scenarioResult {
	agg := scenarioResult{params: params, settled: true}
	for _, target := range targets {
		res := runScenario(base, params, target, steps)
		agg.settled = agg.settled && res.settled
		agg.stepSettled = max(agg.stepSettled, res.stepSettled)
		agg.minDistance = max(agg.minDistance, res.minDistance)
		agg.peakSpeed = max(agg.peakSpeed, res.peakSpeed)
	}
	return agg
}

func runScenario(base entity.Tuning, params paramSet, target cp.Vector, steps int) scenarioResult {
	world := physics.NewWorld(nil)
	m := entity.NewMissile(world, cp.Vector{})
	t := base
	t.MaxAccel = params.maxAccel
	t.SpeedGain = params.speedGain
	t.TurnGain = params.turnGain
	t.TurnDamping = params.turnDamping
	m.SetTuning(t)
	m.CommandSeek(target)

	res := scenarioResult{params: params, minDistance: m.Position().Distance(target)}
	inside := 0
	prev := m.Position()
	for step := 0; step < steps; step++ {
		m.Update()
		world.Step(physics.DefaultStep)

		pos := m.Position()
		if v := pos.Distance(prev) / physics.DefaultStep.Dt; v > res.peakSpeed {
			res.peakSpeed = v
		}
		prev = pos
		dist := pos.Distance(target)
		if dist < res.minDistance {
			res.minDistance = dist
		}
		if res.settled {
			continue
		}
		if dist > settleRadius {
			inside = 0
			continue
		}
		inside++
		if inside == settleTicks {
			res.settled = true
			res.stepSettled = step + 2 - settleTicks
		}
	}
	return res
}
