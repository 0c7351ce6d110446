package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/require"
)

func TestFilterDevices(t *testing.T) {
	v10 := vk.MakeVersion(1, 0, 0)
	v12 := vk.MakeVersion(1, 2, 0)
	v13 := vk.MakeVersion(1, 3, 0)

	tests := []struct {
		name     string
		versions []uint32
		scanAll  bool
		want     []int
	}{
		{"none", nil, false, nil},
		{"all too old", []uint32{v10, v10}, true, nil},
		{"first match stops", []uint32{v10, v12, v13}, false, []int{1}},
		{"scan all", []uint32{v10, v12, v13}, true, []int{1, 2}},
		{"exact minimum", []uint32{v12}, false, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, filterDevices(tt.versions, v12, tt.scanAll))
		})
	}
}

func TestSelectDevice(t *testing.T) {
	integrated := vk.PhysicalDeviceTypeIntegratedGpu
	discrete := vk.PhysicalDeviceTypeDiscreteGpu
	cpu := vk.PhysicalDeviceTypeCpu

	tests := []struct {
		name  string
		types []vk.PhysicalDeviceType
		want  int
	}{
		{"empty", nil, -1},
		{"single", []vk.PhysicalDeviceType{cpu}, 0},
		{"integrated then discrete", []vk.PhysicalDeviceType{integrated, discrete}, 1},
		{"discrete first stays", []vk.PhysicalDeviceType{discrete, integrated, discrete}, 0},
		// Only an integrated pick is ever replaced.
		{"cpu then discrete", []vk.PhysicalDeviceType{cpu, discrete}, 0},
		{"first discrete wins", []vk.PhysicalDeviceType{integrated, discrete, discrete}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, selectDevice(tt.types))
		})
	}
}

func TestSelectQueueFamily(t *testing.T) {
	graphics := vk.QueueFlags(vk.QueueGraphicsBit)
	compute := vk.QueueFlags(vk.QueueComputeBit)
	transfer := vk.QueueFlags(vk.QueueTransferBit)

	tests := []struct {
		name    string
		flags   []vk.QueueFlags
		present []bool
		want    int32
	}{
		{"no families", nil, nil, -1},
		{"graphics and present", []vk.QueueFlags{graphics | compute}, []bool{true}, 0},
		{"graphics without present", []vk.QueueFlags{graphics, transfer}, []bool{false, true}, -1},
		{"later family", []vk.QueueFlags{transfer, graphics, graphics}, []bool{true, false, true}, 2},
		{"short present list", []vk.QueueFlags{graphics}, nil, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, selectQueueFamily(tt.flags, tt.present))
		})
	}
}

func TestFindMemoryType(t *testing.T) {
	deviceLocal := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	hostCoherent := vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit)
	types := []vk.MemoryPropertyFlags{deviceLocal, hostVisible, hostVisible | hostCoherent}

	require.Equal(t, int32(0), findMemoryType(types, 0b111, deviceLocal))
	require.Equal(t, int32(1), findMemoryType(types, 0b111, hostVisible))
	require.Equal(t, int32(2), findMemoryType(types, 0b111, hostVisible|hostCoherent))
	// The filter excludes type 1.
	require.Equal(t, int32(2), findMemoryType(types, 0b100, hostVisible))
	require.Equal(t, int32(-1), findMemoryType(types, 0b001, hostVisible))
	require.Equal(t, int32(-1), findMemoryType(nil, 0xffffffff, deviceLocal))
}
