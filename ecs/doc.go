// Package ecs provides ECS adapters for troupe's event dispatch.
//
// The primary adapter is [NewDonburiSink], which republishes every event
// the scene delivers (pointer, key, crossing, stage) into a [Donburi]
// world as typed events. Subscribe to [DispatchedEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
