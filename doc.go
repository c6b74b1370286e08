// Package pathfinder provides a generic A* pathfinding engine over implicit
// directed graphs.
//
// It exposes two main entry points:
//
//   - Pathfinder.FindPath: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// The embedding application supplies the graph through the Graph interface
// (EstimateCost, CostOfEdge, Neighbors) or the Funcs closure adapter. Every
// discovered node gets a Step in a StepTable, which is handed back with the
// Result for visualisation.
package pathfinder
