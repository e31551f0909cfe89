package sysmonitor

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/shirou/gopsutil/v4/mem"
)

// SystemMemory represents system memory information in bytes
type SystemMemory struct {
	Total     uint64
	Available uint64
}

// MemoryReader is a function that reads system memory information
type MemoryReader func() (SystemMemory, error)

var (
	errUnlimited = errors.New("unlimited memory limit")

	memoryReader atomic.Value // MemoryReader
	fileSystem   atomic.Value // fileSystemHolder
)

// fileSystemHolder keeps the concrete type stored in fileSystem constant.
type fileSystemHolder struct {
	fs FileSystem
}

func init() {
	memoryReader.Store(MemoryReader(readSystemMemoryAuto))
	fileSystem.Store(fileSystemHolder{fs: OSFileSystem{}})
}

// cgroupMemoryConfig holds the control file locations of a cgroup version.
type cgroupMemoryConfig struct {
	version     string
	usagePath   string
	limitPath   string
	statPath    string
	inactiveKey string
	// v1 reports "unlimited" as a huge number instead of "max"
	checkUnlimited bool
}

var (
	cgroupV2Config = cgroupMemoryConfig{
		version:     "v2",
		usagePath:   "/sys/fs/cgroup/memory.current",
		limitPath:   "/sys/fs/cgroup/memory.max",
		statPath:    "/sys/fs/cgroup/memory.stat",
		inactiveKey: "inactive_file",
	}
	cgroupV1Config = cgroupMemoryConfig{
		version:        "v1",
		usagePath:      "/sys/fs/cgroup/memory/memory.usage_in_bytes",
		limitPath:      "/sys/fs/cgroup/memory/memory.limit_in_bytes",
		statPath:       "/sys/fs/cgroup/memory/memory.stat",
		inactiveKey:    "total_inactive_file",
		checkUnlimited: true,
	}
)

// GetSystemMemory returns the current system memory statistics.
// This function auto-detects the environment (cgroup v2, v1, or host)
// and returns appropriate memory information.
func GetSystemMemory() (SystemMemory, error) {
	return loadMemoryReader()()
}

// AvailableMemory returns the memory available to the process in bytes.
func AvailableMemory() (uint64, error) {
	m, err := GetSystemMemory()
	if err != nil {
		return 0, err
	}
	return m.Available, nil
}

// readSystemMemoryAuto detects the environment once and "upgrades" the reader
func readSystemMemoryAuto() (SystemMemory, error) {
	if m, err := readCgroupV2Memory(); err == nil {
		memoryReader.Store(MemoryReader(readCgroupV2Memory))
		return m, nil
	}

	if m, err := readCgroupV1Memory(); err == nil {
		memoryReader.Store(MemoryReader(readCgroupV1Memory))
		return m, nil
	}

	// Fallback to Host (Bare metal / VM / Unlimited Container)
	m, err := readHostMemory()
	if err != nil {
		return SystemMemory{}, fmt.Errorf("failed to read system memory from all sources: %w", err)
	}
	memoryReader.Store(MemoryReader(readHostMemory))
	return m, nil
}

func readCgroupV2Memory() (SystemMemory, error) {
	return readCgroupMemoryWithFS(loadFileSystem(), cgroupV2Config)
}

func readCgroupV1Memory() (SystemMemory, error) {
	return readCgroupMemoryWithFS(loadFileSystem(), cgroupV1Config)
}

func readCgroupMemoryWithFS(fs FileSystem, config cgroupMemoryConfig) (SystemMemory, error) {
	usage, err := readCgroupValueWithFS(fs, config.usagePath, false)
	if err != nil {
		return SystemMemory{}, fmt.Errorf("failed to read cgroup %s memory usage: %w", config.version, err)
	}

	limit, err := readCgroupValueWithFS(fs, config.limitPath, config.checkUnlimited)
	if err != nil {
		return SystemMemory{}, fmt.Errorf("failed to read cgroup %s memory limit: %w", config.version, err)
	}

	// inactive_file is reclaimable; 0 if unavailable
	inactiveFile, err := readCgroupStatWithFS(fs, config.statPath, config.inactiveKey)
	if err != nil {
		inactiveFile = 0
	}

	// Available = (Limit - Usage) + Reclaimable
	var available uint64
	if usage > limit {
		available = inactiveFile
	} else {
		available = (limit - usage) + inactiveFile
	}

	if available > limit {
		available = limit
	}

	return SystemMemory{
		Total:     limit,
		Available: available,
	}, nil
}

func readCgroupValueWithFS(fs FileSystem, path string, checkUnlimited bool) (uint64, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	str := strings.TrimSpace(string(data))
	if str == "max" {
		return 0, errUnlimited
	}
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse value %q from %s: %w", str, path, err)
	}
	if checkUnlimited && val > (1<<60) {
		return 0, errUnlimited
	}
	return val, nil
}

func readCgroupStatWithFS(fs FileSystem, path string, key string) (uint64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := bytes.Fields(scanner.Bytes())
		if len(fields) >= 2 && string(fields[0]) == key {
			val, err := strconv.ParseUint(string(fields[1]), 10, 64)
			if err != nil {
				return 0, fmt.Errorf("failed to parse value for key %q in %s: %w", key, path, err)
			}
			return val, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error reading %s: %w", path, err)
	}
	return 0, fmt.Errorf("key %q not found in %s", key, path)
}

// readHostMemory reads host memory statistics via gopsutil.
func readHostMemory() (SystemMemory, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return SystemMemory{}, fmt.Errorf("failed to read virtual memory: %w", err)
	}
	return SystemMemory{
		Total:     v.Total,
		Available: v.Available,
	}, nil
}

func loadMemoryReader() MemoryReader {
	return memoryReader.Load().(MemoryReader)
}

// SetMemoryReader replaces the current memory reader (for testing).
// It returns a cleanup function to restore the previous reader.
func SetMemoryReader(reader MemoryReader) func() {
	prev := loadMemoryReader()
	memoryReader.Store(reader)
	return func() {
		memoryReader.Store(prev)
	}
}

func loadFileSystem() FileSystem {
	return fileSystem.Load().(fileSystemHolder).fs
}
