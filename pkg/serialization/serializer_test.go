package serialization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rharris115/callable-graph/internal/app/dto"
)

func sampleReport() dto.ExecutionReport {
	return dto.ExecutionReport{
		Success:             true,
		TotalElapsedSeconds: 0.125,
		Components: []dto.ComponentTiming{
			{Name: "hash", ElapsedSeconds: 0.05},
			{Name: "str", ElapsedSeconds: 0.075},
		},
	}
}

func TestSerializer_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "msgpack no compression", config: Config{Codec: MsgpackCodec{}, Compression: CompressionNone}},
		{name: "msgpack gzip", config: Config{Codec: MsgpackCodec{}, Compression: CompressionGzip}},
		{name: "msgpack zstd", config: Config{Codec: MsgpackCodec{}, Compression: CompressionZstd}},
		{name: "json zstd", config: Config{Codec: JSONCodec{}, Compression: CompressionZstd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSerializer(tt.config)
			original := sampleReport()

			data, err := s.Serialize(original)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			var decoded dto.ExecutionReport
			require.NoError(t, s.Deserialize(data, &decoded))
			assert.Equal(t, original, decoded)
		})
	}
}

func TestSerializer_Defaults(t *testing.T) {
	s := NewSerializer(Config{})
	assert.Equal(t, "msgpack", s.config.Codec.Name())
	assert.Equal(t, CompressionNone, s.config.Compression)
}

func TestSerializer_UnknownCompression(t *testing.T) {
	s := NewSerializer(Config{Codec: JSONCodec{}, Compression: CompressionType("lz4")})
	_, err := s.Serialize(sampleReport())
	assert.Error(t, err)
}

func TestCodecNames(t *testing.T) {
	assert.Equal(t, "msgpack", MsgpackCodec{}.Name())
	assert.Equal(t, "json", JSONCodec{}.Name())
}
