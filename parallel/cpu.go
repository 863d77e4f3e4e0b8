package parallel

import "fmt"
import "runtime"

import "github.com/klauspost/cpuid/v2"

// Threads reports the default number of decode workers: the physical core
// count when cpuid can detect it, the logical CPU count otherwise.
func Threads() int {
	if cpuid.CPU.PhysicalCores > 0 {
		return cpuid.CPU.PhysicalCores
	}
	return runtime.NumCPU()
}

// Describe returns a one line summary of the host CPU for the startup banner.
func Describe() string {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = runtime.GOARCH
	}
	return fmt.Sprintf("cpu=%q physical_cores=%d logical_cores=%d avx2=%t avx512=%t",
		brand,
		cpuid.CPU.PhysicalCores,
		cpuid.CPU.LogicalCores,
		cpuid.CPU.Supports(cpuid.AVX2),
		cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ),
	)
}
