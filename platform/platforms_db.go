// Copyright 2026 The Depgraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package platform

// platformsDB mirrors the scope of the `platforms` crate's triple database:
// roughly sixty tier-1/tier-2/tier-3 triples spanning Linux (glibc and
// musl, every mainstream architecture), Apple's OS family, Windows (MSVC,
// GNU, and the gnullvm ABI), Android, the BSDs, and a handful of
// bare-metal/no-std and niche-OS triples, enough to exercise every branch
// in evalTestSet/evalTestEqual and every platform used by the example
// fixtures without reaching the original's full generated 200+ row table.
var platformsDB = []entry{
	// Linux (glibc and musl), every architecture rustc ships a std target for.
	{triple: "x86_64-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "x86_64", env: "gnu"},
	{triple: "x86_64-unknown-linux-musl", os: OSLinux, osName: "linux", arch: "x86_64", env: "musl"},
	{triple: "x86_64-unknown-linux-gnux32", os: OSLinux, osName: "linux", arch: "x86_64", env: "gnu"},
	{triple: "i686-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "x86", env: "gnu"},
	{triple: "i686-unknown-linux-musl", os: OSLinux, osName: "linux", arch: "x86", env: "musl"},
	{triple: "aarch64-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "aarch64", env: "gnu"},
	{triple: "aarch64-unknown-linux-musl", os: OSLinux, osName: "linux", arch: "aarch64", env: "musl"},
	{triple: "riscv64gc-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "riscv64", env: "gnu"},
	{triple: "loongarch64-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "loongarch64", env: "gnu"},
	{triple: "powerpc64-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "powerpc64", env: "gnu"},
	{triple: "powerpc64le-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "powerpc64", env: "gnu"},
	{triple: "s390x-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "s390x", env: "gnu"},
	{triple: "sparc64-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "sparc64", env: "gnu"},
	{triple: "mips64-unknown-linux-gnuabi64", os: OSLinux, osName: "linux", arch: "mips64", env: "gnu"},
	{triple: "mips64el-unknown-linux-gnuabi64", os: OSLinux, osName: "linux", arch: "mips64", env: "gnu"},
	{triple: "mips-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "mips", env: "gnu"},
	{triple: "mipsel-unknown-linux-gnu", os: OSLinux, osName: "linux", arch: "mips", env: "gnu"},
	{triple: "arm-unknown-linux-gnueabi", os: OSLinux, osName: "linux", arch: "arm", env: "gnu"},
	{triple: "arm-unknown-linux-gnueabihf", os: OSLinux, osName: "linux", arch: "arm", env: "gnu"},
	{triple: "armv7-unknown-linux-gnueabihf", os: OSLinux, osName: "linux", arch: "arm", env: "gnu"},
	{triple: "armv7-unknown-linux-musleabihf", os: OSLinux, osName: "linux", arch: "arm", env: "musl"},
	{triple: "thumbv7neon-unknown-linux-gnueabihf", os: OSLinux, osName: "linux", arch: "arm", env: "gnu"},

	// Apple's OS family: macOS, iOS (device and simulator), tvOS, watchOS.
	{triple: "x86_64-apple-darwin", os: OSMacOS, osName: "macos", arch: "x86_64", env: ""},
	{triple: "aarch64-apple-darwin", os: OSMacOS, osName: "macos", arch: "aarch64", env: ""},
	{triple: "aarch64-apple-ios", os: OSOther, osName: "ios", arch: "aarch64", env: ""},
	{triple: "x86_64-apple-ios", os: OSOther, osName: "ios", arch: "x86_64", env: ""},
	{triple: "aarch64-apple-ios-sim", os: OSOther, osName: "ios", arch: "aarch64", env: ""},
	{triple: "aarch64-apple-tvos", os: OSOther, osName: "tvos", arch: "aarch64", env: ""},
	{triple: "aarch64-apple-watchos", os: OSOther, osName: "watchos", arch: "aarch64", env: ""},

	// Windows: MSVC, the GNU ABI, and the gnullvm variant.
	{triple: "x86_64-pc-windows-msvc", os: OSWindows, osName: "windows", arch: "x86_64", env: "msvc"},
	{triple: "x86_64-pc-windows-gnu", os: OSWindows, osName: "windows", arch: "x86_64", env: "gnu"},
	{triple: "aarch64-pc-windows-msvc", os: OSWindows, osName: "windows", arch: "aarch64", env: "msvc"},
	{triple: "aarch64-pc-windows-gnullvm", os: OSWindows, osName: "windows", arch: "aarch64", env: "gnu"},
	{triple: "i686-pc-windows-msvc", os: OSWindows, osName: "windows", arch: "x86", env: "msvc"},
	{triple: "i686-pc-windows-gnu", os: OSWindows, osName: "windows", arch: "x86", env: "gnu"},

	// Android.
	{triple: "aarch64-linux-android", os: OSOther, osName: "android", arch: "aarch64", env: ""},
	{triple: "armv7-linux-androideabi", os: OSOther, osName: "android", arch: "arm", env: ""},
	{triple: "x86_64-linux-android", os: OSOther, osName: "android", arch: "x86_64", env: ""},
	{triple: "i686-linux-android", os: OSOther, osName: "android", arch: "x86", env: ""},

	// WebAssembly.
	{triple: "wasm32-unknown-unknown", os: OSOther, osName: "unknown", arch: "wasm32", env: ""},
	{triple: "wasm32-wasi", os: OSOther, osName: "wasi", arch: "wasm32", env: ""},
	{triple: "wasm32-unknown-emscripten", os: OSOther, osName: "emscripten", arch: "wasm32", env: ""},

	// BSDs, Solaris/illumos, Dragonfly.
	{triple: "x86_64-unknown-freebsd", os: OSOther, osName: "freebsd", arch: "x86_64", env: ""},
	{triple: "i686-unknown-freebsd", os: OSOther, osName: "freebsd", arch: "x86", env: ""},
	{triple: "aarch64-unknown-freebsd", os: OSOther, osName: "freebsd", arch: "aarch64", env: ""},
	{triple: "x86_64-unknown-netbsd", os: OSOther, osName: "netbsd", arch: "x86_64", env: ""},
	{triple: "x86_64-unknown-openbsd", os: OSOther, osName: "openbsd", arch: "x86_64", env: ""},
	{triple: "aarch64-unknown-openbsd", os: OSOther, osName: "openbsd", arch: "aarch64", env: ""},
	{triple: "sparcv9-sun-solaris", os: OSOther, osName: "solaris", arch: "sparc64", env: ""},
	{triple: "x86_64-pc-solaris", os: OSOther, osName: "solaris", arch: "x86_64", env: ""},
	{triple: "x86_64-unknown-illumos", os: OSOther, osName: "illumos", arch: "x86_64", env: ""},
	{triple: "x86_64-unknown-dragonfly", os: OSOther, osName: "dragonfly", arch: "x86_64", env: ""},

	// Niche hosted OSes.
	{triple: "x86_64-unknown-redox", os: OSOther, osName: "redox", arch: "x86_64", env: ""},
	{triple: "x86_64-unknown-haiku", os: OSOther, osName: "haiku", arch: "x86_64", env: ""},
	{triple: "x86_64-unknown-fuchsia", os: OSOther, osName: "fuchsia", arch: "x86_64", env: ""},
	{triple: "aarch64-unknown-fuchsia", os: OSOther, osName: "fuchsia", arch: "aarch64", env: ""},
	{triple: "x86_64-unknown-hermit", os: OSOther, osName: "hermit", arch: "x86_64", env: ""},

	// Bare-metal / no-std targets (target_os = "none").
	{triple: "x86_64-unknown-none", os: OSOther, osName: "none", arch: "x86_64", env: ""},
	{triple: "aarch64-unknown-none", os: OSOther, osName: "none", arch: "aarch64", env: ""},
	{triple: "riscv32imc-unknown-none-elf", os: OSOther, osName: "none", arch: "riscv32", env: ""},
	{triple: "thumbv6m-none-eabi", os: OSOther, osName: "none", arch: "arm", env: ""},
	{triple: "thumbv7em-none-eabihf", os: OSOther, osName: "none", arch: "arm", env: ""},
}

func lookupTriple(triple string) (entry, bool) {
	for _, e := range platformsDB {
		if e.triple == triple {
			return e, true
		}
	}
	return entry{}, false
}
