package scoring

import (
	"strings"

	"github.com/ewilliams-labs/cognia/internal/core/domain"
)

const signatureSeparator = " • "

var (
	signatureTextures = [...]string{"Synthesized", "Atmospheric", "Kinetic", "Cerebral", "Organic", "Deep", "Prism", "Ethereal"}
	signatureVibes    = [...]string{"Resonance", "Bloom", "Flux", "Harmonic", "Pulse", "Canvas", "Frequency", "Velocity"}
)

// SignatureNoSeed is returned for a featureless track with no text to hash.
const SignatureNoSeed = "Temporal Drift • Neutral"

// SonicSignature describes a track in one or two phrases: kinetic texture
// from energy and tempo, then harmonic atmosphere from valence and
// acousticness. It is independent of the mood label.
func SonicSignature(f *domain.AudioFeatures, title, artist string) string {
	if f == nil {
		seed := title + artist
		if seed == "" {
			return SignatureNoSeed
		}
		h := seedHash(seed)
		return signatureTextures[h%uint32(len(signatureTextures))] +
			signatureSeparator +
			signatureVibes[(h>>2)%uint32(len(signatureVibes))]
	}

	descriptors := make([]string, 0, 2)
	switch {
	case f.Energy > 0.8:
		if f.Tempo > 140 {
			descriptors = append(descriptors, "Hyper-Kinetic")
		} else {
			descriptors = append(descriptors, "High-Voltage Energy")
		}
	case f.Energy < 0.3:
		descriptors = append(descriptors, "Low-Fidelity Cinematic")
	default:
		descriptors = append(descriptors, "Steady-State Rhythm")
	}

	switch {
	case f.Valence > 0.8:
		descriptors = append(descriptors, "Euphoric Luminescence")
	case f.Valence < 0.2:
		descriptors = append(descriptors, "Noir-Atmospheric")
	case f.Acousticness > 0.8:
		descriptors = append(descriptors, "Organic Resonance")
	}

	return strings.Join(descriptors, signatureSeparator)
}

// DescribeAudioFeatures produces the tempo/texture/vibe tag line.
func DescribeAudioFeatures(f *domain.AudioFeatures) string {
	if f == nil {
		return "Acoustic Pattern Encrypted"
	}

	tags := make([]string, 0, 3)
	switch {
	case f.Tempo < 80:
		tags = append(tags, "Slow")
	case f.Tempo > 130:
		tags = append(tags, "High Tempo")
	default:
		tags = append(tags, "Moderate Pace")
	}

	switch {
	case f.Acousticness > 0.75:
		if f.Instrumentalness > 0.4 {
			tags = append(tags, "Orchestral/Strings")
		} else {
			tags = append(tags, "Pure Acoustic")
		}
	case f.Instrumentalness > 0.7:
		tags = append(tags, "Deep Instrumental")
	case f.Energy > 0.85:
		tags = append(tags, "Vibrant Energy")
	}

	switch {
	case f.Valence < 0.3:
		tags = append(tags, "Nocturnal/Moody")
	case f.Valence > 0.75:
		tags = append(tags, "Euphoric/Bright")
	case f.Energy < 0.35:
		tags = append(tags, "Fluid Mellow")
	}

	return strings.Join(tags, signatureSeparator)
}
